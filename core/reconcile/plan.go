package reconcile

import (
	"context"
	"fmt"

	"geotree/core/taxonomy"
)

// Plan reports what CreateOrUpdate would do for every item without writing.
// A query failure aborts the plan.
func (e *Engine) Plan(ctx context.Context, vocabulary string, items []Item) (*Plan, error) {
	plan := &Plan{Actions: make([]Action, 0, len(items))}
	plan.Summary.TotalItems = len(items)

	for _, item := range items {
		// Two results are enough to detect a name shared by several terms.
		ids, err := e.store.FindTermIDs(ctx, taxonomy.Query{
			Vocabulary: vocabulary,
			Name:       item.Name,
			Langcode:   e.defaultLangcode,
			Limit:      2,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to plan %q: %w", item.Name, err)
		}

		if len(ids) == 0 {
			plan.Actions = append(plan.Actions, Action{
				Type:   ActionCreate,
				Key:    item.Name,
				Reason: "no term with this name",
			})
			plan.Summary.Creates++
			continue
		}

		action := Action{
			Type:   ActionUpdate,
			Key:    item.Name,
			TermID: ids[0],
			Reason: "name matches existing term",
		}
		if len(ids) > 1 {
			action.Reason = fmt.Sprintf("name matches %d or more terms, lowest id is updated", len(ids))
			plan.Summary.Duplicates++
		}
		plan.Actions = append(plan.Actions, action)
		plan.Summary.Updates++
	}

	return plan, nil
}
