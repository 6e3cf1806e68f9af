// Package committer applies Spanner mutations collected by repositories.
//
// Repositories build mutations (they do not apply them), collect them into a
// CommitPlan and hand the plan to a Committer:
//
//	// 1. Domain methods change the aggregate and mark dirty fields
//	if err := product.SetUnitPrice(price); err != nil {
//	    return err
//	}
//
//	// 2. Repository turns the dirty fields into a mutation
//	plan := committer.NewPlan()
//	plan.Add(repo.UpdateMut(product))
//
//	// 3. The plan is applied in one transaction, optionally after a guard
//	//    read inside the same transaction
//	return c.ApplyIf(ctx, plan, rowIsLive)
//
// Everything in a plan commits together or not at all.
package committer

import (
	"context"
	"fmt"

	"cloud.google.com/go/spanner"
)

// CommitPlan is a typed wrapper around Spanner mutations.
type CommitPlan struct {
	mutations []*spanner.Mutation
}

// NewPlan creates a new empty CommitPlan.
func NewPlan() *CommitPlan {
	return &CommitPlan{
		mutations: make([]*spanner.Mutation, 0),
	}
}

// Add adds a mutation to the plan.
// Nil mutations are silently ignored for convenience.
func (cp *CommitPlan) Add(mut *spanner.Mutation) {
	if mut != nil {
		cp.mutations = append(cp.mutations, mut)
	}
}

// AddMultiple adds multiple mutations to the plan.
func (cp *CommitPlan) AddMultiple(muts []*spanner.Mutation) {
	for _, mut := range muts {
		cp.Add(mut)
	}
}

// Mutations returns all collected mutations.
func (cp *CommitPlan) Mutations() []*spanner.Mutation {
	return cp.mutations
}

// IsEmpty returns true if the plan has no mutations.
func (cp *CommitPlan) IsEmpty() bool {
	return len(cp.mutations) == 0
}

// Count returns the number of mutations in the plan.
func (cp *CommitPlan) Count() int {
	return len(cp.mutations)
}

// Guard runs inside the transaction before the plan is buffered. A non-nil
// error aborts the transaction and is returned unchanged by ApplyIf.
type Guard func(ctx context.Context, txn *spanner.ReadWriteTransaction) error

// Committer provides transaction execution for CommitPlans.
type Committer struct {
	client *spanner.Client
}

// NewCommitter creates a new Committer.
func NewCommitter(client *spanner.Client) *Committer {
	return &Committer{client: client}
}

// Apply executes the CommitPlan atomically.
func (c *Committer) Apply(ctx context.Context, plan *CommitPlan) error {
	if plan.IsEmpty() {
		return nil // Nothing to commit
	}

	_, err := c.client.Apply(ctx, plan.Mutations())
	if err != nil {
		return fmt.Errorf("failed to apply commit plan: %w", err)
	}

	return nil
}

// ApplyIf executes the CommitPlan in a read-write transaction after guard
// accepts the current state.
func (c *Committer) ApplyIf(ctx context.Context, plan *CommitPlan, guard Guard) error {
	if plan.IsEmpty() {
		return nil // Nothing to commit
	}

	var guardErr error
	_, err := c.client.ReadWriteTransaction(ctx, func(ctx context.Context, txn *spanner.ReadWriteTransaction) error {
		guardErr = nil
		if guard != nil {
			if err := guard(ctx, txn); err != nil {
				guardErr = err
				return err
			}
		}
		return txn.BufferWrite(plan.Mutations())
	})
	if guardErr != nil {
		return guardErr
	}
	if err != nil {
		return fmt.Errorf("failed to apply commit plan: %w", err)
	}

	return nil
}
