package main

import (
	"context"
	"fmt"

	"github.com/pkg/errors"

	"github.com/classreconnect/backend/core/resource"
)

// restoreDefault clears the deletion record for a default resource title so
// the next seeding run reinserts it. This is the only path that removes a
// deletion record.
func (cli *commandLine) restoreDefault(title string) error {
	if err := cli.tombRepo.RemoveTombstone(context.Background(), title); err != nil {
		if errors.Cause(err) == resource.ErrNotFound {
			return fmt.Errorf("no deletion record for title %q", title)
		}
		return err
	}
	fmt.Printf("deletion record cleared for %q; it will be reseeded on next run\n", title)
	return nil
}
