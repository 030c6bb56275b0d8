package api

import (
	"context"
	"log/slog"
)

// Parallel returns a node that runs every branch concurrently on the task
// substrate, blocks until all of them settle, and yields a []any of their
// results in declared order: slot i always holds branch i's result, no
// matter which branch finished first.
//
// Branch isolation is explicit: each branch runs inside its own task with
// its own panic boundary, a failing branch settles as a Failed task whose
// slot is nil, and neither siblings nor the join are disturbed. Branches
// receive independent views of the input state.
func Parallel(nodes ...Node) Node {
	return Named("parallel", func(ctx context.Context, s State) (any, error) {
		e := ExecutorFromContext(ctx)

		tasks := make([]*Task, len(nodes))
		for i, n := range nodes {
			branch := n
			tasks[i] = Go(ctx, func(ctx context.Context) (any, error) {
				r, err := e.run(ctx, branch, s)
				if err != nil && !IsEscalated(err) {
					e.swallow(ctx, branch.name, err)
					return nil, nil
				}
				return r, err
			})
		}

		results := make([]any, len(nodes))
		for i, t := range tasks {
			r, err := t.Join(ctx)
			if err != nil {
				e.logger.ErrorContext(ctx, "parallel_branch_failed",
					slog.Int("slot", i),
					slog.String("node", nodes[i].name),
					slog.String("task_id", t.ID()),
					slog.Any("error", err),
				)
				continue
			}
			results[i] = r
		}
		return results, nil
	})
}
