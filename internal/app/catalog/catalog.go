// Package catalog holds the static task catalog. Pure lookup — the only
// behavior is definitionOf(taskID), plus the precomputed impact budgets the
// timeline builder normalizes against.
package catalog

import "github.com/vigor-health/vigor/internal/domain"

// Catalog is a read-only task definition lookup.
type Catalog struct {
	defs  map[domain.TaskID]domain.TaskDefinition
	order []domain.TaskID
}

// Default returns the production catalog.
//
// Two groups: "dos" contribute positively when performed, "don'ts" when
// avoided. Sleep and meals are dual-direction dos — underperforming them
// counts against the score, so their weights sit in both budgets.
func Default() *Catalog {
	return New([]domain.TaskDefinition{
		{
			ID: domain.TaskSunlight, Name: "Morning sunlight", Kind: domain.KindSlider,
			Goal: 30, MaxValue: 120, Step: 5, ImpactWeight: 15,
		},
		{
			ID: domain.TaskExercise, Name: "Resistance training", Kind: domain.KindBoolean,
			Goal: 1, MaxValue: 1, Step: 1, ImpactWeight: 25,
		},
		{
			ID: domain.TaskSleep, Name: "Sleep", Kind: domain.KindSlider,
			Goal: 8, MaxValue: 12, Step: 0.5, ImpactWeight: 30, DualDirection: true,
		},
		{
			ID: domain.TaskMeals, Name: "Diet quality", Kind: domain.KindMealLog,
			Goal: 3, MaxValue: 6, Step: 1, ImpactWeight: 25, DualDirection: true,
		},
		{
			ID: domain.TaskSupplements, Name: "Supplement stack", Kind: domain.KindChecklist,
			Goal: 4, MaxValue: 4, Step: 1, ImpactWeight: 30,
			ChecklistItems: []string{"vitamin_d3", "zinc", "magnesium", "omega_3"},
		},
		{
			ID: domain.TaskAbstinence, Name: "Retention", Kind: domain.KindBoolean,
			Goal: 0, MaxValue: 1, Step: 1, ImpactWeight: 30, Inverted: true,
		},
		{
			ID: domain.TaskStress, Name: "Stress level", Kind: domain.KindInvertedSlider,
			Goal: 3, MaxValue: 10, Step: 1, ImpactWeight: 25,
		},
		{
			ID: domain.TaskAlcohol, Name: "Alcohol", Kind: domain.KindInvertedSlider,
			Goal: 0, MaxValue: 10, Step: 1, ImpactWeight: 40,
		},
	})
}

// New builds a catalog from definitions, preserving order for display.
func New(defs []domain.TaskDefinition) *Catalog {
	c := &Catalog{defs: make(map[domain.TaskID]domain.TaskDefinition, len(defs))}
	for _, d := range defs {
		d.KindName = d.Kind.String()
		c.defs[d.ID] = d
		c.order = append(c.order, d.ID)
	}
	return c
}

// DefinitionOf looks up a task definition. The second return is false for
// unknown ids — callers in the scoring path skip those silently.
func (c *Catalog) DefinitionOf(id domain.TaskID) (domain.TaskDefinition, bool) {
	d, ok := c.defs[id]
	return d, ok
}

// All returns every definition in catalog order.
func (c *Catalog) All() []domain.TaskDefinition {
	out := make([]domain.TaskDefinition, 0, len(c.order))
	for _, id := range c.order {
		out = append(out, c.defs[id])
	}
	return out
}

// TotalPositiveImpact sums impact weights over the "do" group.
func (c *Catalog) TotalPositiveImpact() float64 {
	var sum float64
	for _, d := range c.defs {
		if !d.IsDont() {
			sum += d.ImpactWeight
		}
	}
	return sum
}

// TotalNegativeImpact sums impact weights over the "don't" group plus the
// dual-direction dos.
func (c *Catalog) TotalNegativeImpact() float64 {
	var sum float64
	for _, d := range c.defs {
		if d.IsDont() || d.DualDirection {
			sum += d.ImpactWeight
		}
	}
	return sum
}
