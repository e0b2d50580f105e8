// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package filter

import (
	"fmt"
	"io"

	"github.com/dustin/go-humanize"
)

// progressReporter writes periodic status lines to the diagnostic channel
type progressReporter struct {
	w        io.Writer
	family   string
	interval uint64
}

func (p *progressReporter) due(c Counters) bool {
	return p.w != nil && p.interval > 0 && c.TotalLines%p.interval == 0
}

func (p *progressReporter) report(c Counters) {
	fmt.Fprintf(p.w, "Processed %s lines, found %s %s addresses...\n",
		humanize.Comma(int64(c.TotalLines)), humanize.Comma(int64(c.Matched)), p.family)

	// *os.File writes are unbuffered; buffered writers get flushed here.
	if f, ok := p.w.(interface{ Flush() error }); ok {
		f.Flush()
	}
}
