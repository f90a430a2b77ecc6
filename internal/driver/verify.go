package driver

import (
	"context"
	"fmt"
	"time"

	"verdant/internal/testkit"
	"verdant/internal/trace"
)

// Verify runs the tree checks on every parsed file and returns one error per
// broken file. sink may be nil.
func Verify(ctx context.Context, res *Result, sink ProgressSink) []error {
	_, span := trace.Start(ctx, trace.ScopePass, "verify")
	defer span.End("")

	var errs []error
	for i := range res.Files {
		fr := &res.Files[i]
		if fr.Root == nil {
			continue
		}
		emit(sink, Event{File: fr.Path, Stage: StageVerify, Status: StatusWorking})
		started := time.Now()
		if err := testkit.CheckTree(string(fr.File.Content), fr.Tree()); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", fr.Path, err))
			emit(sink, Event{File: fr.Path, Stage: StageVerify, Status: StatusError, Err: err, Elapsed: time.Since(started)})
			continue
		}
		emit(sink, Event{File: fr.Path, Stage: StageVerify, Status: StatusDone, Elapsed: time.Since(started)})
	}
	return errs
}
