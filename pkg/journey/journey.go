// Package journey drives the questionnaire: an ordered, linear sequence of
// steps that collects decisions and funnels calculator output into the
// ledger.
//
// A step's slot is recomputed when the step is entered and whenever one of
// its decisions changes while it is current. Changing an upstream answer
// does not touch downstream slots until those steps are entered again.
package journey

import (
	"log/slog"
	"slices"

	"github.com/derichenko12/BeyondHomeV3/pkg/catalog"
	"github.com/derichenko12/BeyondHomeV3/pkg/cost"
	"github.com/derichenko12/BeyondHomeV3/pkg/ledger"
	"github.com/derichenko12/BeyondHomeV3/pkg/recommend"
)

// Journey owns the decisions and the ledger of one session. It is not safe
// for concurrent use.
type Journey struct {
	cat      *catalog.Catalog
	pipeline Pipeline
	index    int
	mode     string
	d        Decisions
	ledger   *ledger.Ledger
	logger   *slog.Logger
}

// Option configures a Journey.
type Option func(*Journey)

// WithPipeline selects the step sequence. Invalid pipelines are ignored.
func WithPipeline(p Pipeline) Option {
	return func(j *Journey) {
		if p.Validate() == nil {
			j.pipeline = p
		}
	}
}

// WithLogger sets the logger used for transitions and soft rejections.
func WithLogger(l *slog.Logger) Option {
	return func(j *Journey) {
		if l != nil {
			j.logger = l
		}
	}
}

// WithDefaultMode sets the self-sufficiency mode a fresh journey starts in.
func WithDefaultMode(id string) Option {
	return func(j *Journey) { j.mode = id }
}

// New starts a journey at the intro step. A nil catalog uses the embedded one.
func New(cat *catalog.Catalog, opts ...Option) *Journey {
	if cat == nil {
		cat = catalog.Default()
	}
	j := &Journey{
		cat:      cat,
		pipeline: Full,
		mode:     DefaultMode,
		ledger:   ledger.New(),
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(j)
	}
	if cat.Mode(j.mode) == nil {
		j.mode = DefaultMode
	}
	j.d = j.initial()
	return j
}

func (j *Journey) initial() Decisions {
	d := DefaultDecisions()
	d.Mode = j.mode
	return d
}

// Catalog returns the reference data the journey prices against.
func (j *Journey) Catalog() *catalog.Catalog { return j.cat }

// Pipeline returns the step sequence.
func (j *Journey) Pipeline() Pipeline { return j.pipeline }

// Current is the step the user is on.
func (j *Journey) Current() Step { return j.pipeline.Steps[j.index] }

// Index is the position of the current step in the pipeline.
func (j *Journey) Index() int { return j.index }

// Decisions returns a copy of the answers so far.
func (j *Journey) Decisions() Decisions { return j.d.clone() }

// Ledger returns a read-only view of the running tally.
func (j *Journey) Ledger() ledger.Snapshot { return j.ledger.Snapshot() }

// Region is the selected region, or nil.
func (j *Journey) Region() *catalog.Region { return j.cat.Region(j.d.RegionID) }

// RankedRegions orders the catalog's regions by how many of the chosen
// preference tags they match.
func (j *Journey) RankedRegions() []recommend.Ranked {
	return recommend.Rank(j.cat.Regions, j.d.Tags)
}

// Done reports whether the journey reached the receipt.
func (j *Journey) Done() bool { return j.Current() == StepReceipt }

// CanAdvance reports whether the current step's required answer is present.
func (j *Journey) CanAdvance() bool {
	return j.Blocker() == ""
}

// Blocker explains why the current step cannot be left forward, or returns
// "" when it can. Preferences are optional: with no tags every region
// scores zero and keeps catalog order.
func (j *Journey) Blocker() string {
	switch j.Current() {
	case StepRegion:
		if j.Region() == nil {
			return "select a region"
		}
	case StepFamily:
		if !j.cat.HasFamilySize(j.d.FamilySize) {
			return "select a household size"
		}
	case StepLand, StepHome, StepProperty:
		if j.Region() == nil {
			return "select a region"
		}
	case StepFood:
		if len(j.d.FoodSystems) == 0 {
			return "select at least one food system"
		}
	case StepResources:
		if !j.ResourceContext().RequiredCategoriesMet(j.d.Resources) {
			return "choose energy, water and heating"
		}
	case StepCreative:
		if !j.d.Creative.Decided() {
			return "choose a creative space or skip"
		}
	case StepReceipt:
		return "journey complete"
	}
	return ""
}

// Next moves one step forward. It returns false, changing nothing, when the
// current step's requirement is not met or the receipt is reached.
func (j *Journey) Next() bool {
	if reason := j.Blocker(); reason != "" {
		j.logger.Debug("advance blocked", "step", j.Current(), "reason", reason)
		return false
	}
	j.index++
	j.enter()
	return true
}

// Back moves one step backward. Decisions of the step being left are kept.
func (j *Journey) Back() bool {
	if j.index == 0 {
		return false
	}
	j.index--
	j.enter()
	return true
}

// Restart resets every decision and clears the ledger.
func (j *Journey) Restart() {
	j.index = 0
	j.d = j.initial()
	j.ledger.Clear()
	j.logger.Info("journey restarted")
}

// SetCatalog swaps the reference data, e.g. after a hot reload, and
// reprices the current step.
func (j *Journey) SetCatalog(cat *catalog.Catalog) {
	if cat == nil {
		return
	}
	j.cat = cat
	j.recompute()
}

func (j *Journey) enter() {
	step := j.Current()
	j.logger.Debug("entered step", "step", step, "index", j.index)

	switch step {
	case StepFood:
		if fit := j.FoodContext().Fit(j.d.FoodSystems); len(fit) != len(j.d.FoodSystems) {
			j.logger.Info("dropped food systems that no longer fit", "kept", fit, "was", j.d.FoodSystems)
			j.d.FoodSystems = fit
		}
	case StepResources:
		j.prepareResources()
	}
	j.recompute()
}

// prepareResources drops selections the region no longer offers and fills
// empty required categories with highly recommended resources.
func (j *Journey) prepareResources() {
	rc := j.ResourceContext()
	kept := slices.DeleteFunc(slices.Clone(j.d.Resources), func(s cost.Selection) bool {
		return !rc.IsAvailable(s.ID)
	})
	if len(kept) != len(j.d.Resources) {
		j.logger.Info("dropped resources unavailable in region", "region", j.d.RegionID)
	}
	j.d.Resources = rc.AutoSelect(kept)
}

// recompute replaces the current step's slots with fresh calculator output.
func (j *Journey) recompute() {
	updates := make(map[ledger.Slot][]ledger.LineItem)
	for _, slot := range j.Current().Slots() {
		updates[slot] = j.contribution(slot)
	}
	if len(updates) == 0 {
		return
	}
	if j.ledger.ReplaceSlots(updates) {
		j.logger.Debug("ledger updated", "step", j.Current(), "version", j.ledger.Version())
	}
}

func (j *Journey) contribution(slot ledger.Slot) []ledger.LineItem {
	region := j.Region()
	switch slot {
	case ledger.SlotLand:
		return cost.LandItems(cost.LandInput{Region: region, Area: j.d.LandArea})
	case ledger.SlotHome:
		return cost.HomeItems(cost.HomeInput{Region: region, Price: j.d.HomePrice})
	case ledger.SlotFood:
		return j.FoodContext().Items(j.d.FoodSystems)
	case ledger.SlotResources:
		return j.ResourceContext().Items(j.d.Resources)
	case ledger.SlotCreative:
		return cost.CreativeItems(j.cat, j.d.Creative)
	}
	return nil
}

// FoodContext is the upstream state the food calculator sees.
func (j *Journey) FoodContext() cost.FoodContext {
	var mode catalog.Mode
	if m := j.cat.Mode(j.d.Mode); m != nil {
		mode = *m
	}
	return cost.FoodContext{
		Region:     j.Region(),
		Systems:    j.cat.FoodSystems,
		Mode:       mode,
		FamilySize: j.d.FamilySize,
		LandArea:   j.d.LandArea,
		HomeArea:   j.d.HomeArea(),
	}
}

// ResourceContext is the upstream state the resources calculator sees.
func (j *Journey) ResourceContext() cost.ResourceContext {
	return cost.ResourceContext{
		Catalog:    j.cat,
		Region:     j.Region(),
		HomeArea:   j.d.HomeArea(),
		FamilySize: j.d.FamilySize,
	}
}

// LandPrice is the derived purchase price of the plot.
func (j *Journey) LandPrice() float64 {
	return cost.LandPrice(cost.LandInput{Region: j.Region(), Area: j.d.LandArea})
}

// changed reprices the current step after one of its decisions moved.
func (j *Journey) changed() {
	j.recompute()
}
