package main

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/anirudhraja/quickwire/internal/perftest"
	"github.com/anirudhraja/quickwire/wire"
	"github.com/rs/zerolog"
)

type workloadResult struct {
	name    string
	records int
	bytes   int
}

type workload interface {
	name() string
	write(dst io.Writer) (records int, err error)
	verify(data []byte) error
}

type typedWorkload[M interface {
	wire.Writable
	wire.Readable
}] struct {
	label   string
	records []M
	newMsg  func() M
}

func (w typedWorkload[M]) name() string { return w.label }

func (w typedWorkload[M]) write(dst io.Writer) (int, error) {
	for i, m := range w.records {
		if err := wire.WriteDelimited(dst, m); err != nil {
			return i, fmt.Errorf("record %d: %w", i, err)
		}
	}
	return len(w.records), nil
}

// verify decodes every frame in data and checks that re-encoding each record
// reproduces the original frame bytes exactly.
func (w typedWorkload[M]) verify(data []byte) error {
	got, err := perftest.ReadStream(data, w.newMsg)
	if err != nil {
		return err
	}
	if len(got) != len(w.records) {
		return fmt.Errorf("decoded %d records, wrote %d", len(got), len(w.records))
	}
	var again bytes.Buffer
	if err := perftest.WriteStream(wire.NewWriter(&again), got); err != nil {
		return fmt.Errorf("re-encode: %w", err)
	}
	if !bytes.Equal(again.Bytes(), data) {
		return fmt.Errorf("re-encoded stream differs from the original")
	}
	return nil
}

func newWorkload[M interface {
	wire.Writable
	wire.Readable
}](label string, records []M, newMsg func() M) workload {
	return typedWorkload[M]{label: label, records: records, newMsg: newMsg}
}

func allWorkloads() []workload {
	return []workload{
		newWorkload("test1", perftest.GenerateTest1(), func() *perftest.Test1 { return new(perftest.Test1) }),
		newWorkload("repeated_bool", perftest.GenerateRepeatedBool(), func() *perftest.TestRepeatedBool { return new(perftest.TestRepeatedBool) }),
		newWorkload("repeated_packed_int32", perftest.GenerateRepeatedPackedInt32(), func() *perftest.TestRepeatedPackedInt32 { return new(perftest.TestRepeatedPackedInt32) }),
		newWorkload("repeated_messages", perftest.GenerateRepeatedMessages(), func() *perftest.TestRepeatedMessages { return new(perftest.TestRepeatedMessages) }),
		newWorkload("optional_messages", perftest.GenerateOptionalMessages(), func() *perftest.TestOptionalMessages { return new(perftest.TestOptionalMessages) }),
		newWorkload("strings", perftest.GenerateStrings(), func() *perftest.TestStrings { return new(perftest.TestStrings) }),
		newWorkload("small_bytes", perftest.GenerateSmallBytes(), func() *perftest.TestBytes { return new(perftest.TestBytes) }),
		newWorkload("large_bytes", perftest.GenerateLargeBytes(), func() *perftest.TestBytes { return new(perftest.TestBytes) }),
		newWorkload("all", perftest.GenerateAll(), func() *perftest.PerftestData { return new(perftest.PerftestData) }),
	}
}

// runWorkloads writes each workload as length-delimited frames, into memory
// or into outPath, reads it back and verifies it.
func runWorkloads(log zerolog.Logger, outPath string) ([]workloadResult, error) {
	var results []workloadResult
	for _, wl := range allWorkloads() {
		start := time.Now()
		data, records, err := encode(wl, outPath)
		if err != nil {
			log.Error().Err(err).Str("workload", wl.name()).Msg("Failed to write workload")
			return nil, fmt.Errorf("%s: %w", wl.name(), err)
		}
		written := time.Since(start)

		if err := wl.verify(data); err != nil {
			log.Error().
				Err(err).
				Str("workload", wl.name()).
				Stringer("kind", wire.KindOf(err)).
				Msg("Verification failed")
			return nil, fmt.Errorf("%s: %w", wl.name(), err)
		}

		log.Info().
			Str("workload", wl.name()).
			Int("records", records).
			Int("bytes", len(data)).
			Dur("write", written).
			Dur("verify", time.Since(start)-written).
			Msg("Workload verified")
		results = append(results, workloadResult{name: wl.name(), records: records, bytes: len(data)})
	}
	return results, nil
}

func encode(wl workload, outPath string) ([]byte, int, error) {
	if outPath == "" {
		var buf bytes.Buffer
		n, err := wl.write(&buf)
		return buf.Bytes(), n, err
	}

	f, err := os.Create(outPath)
	if err != nil {
		return nil, 0, err
	}
	bw := bufio.NewWriter(f)
	n, err := wl.write(bw)
	if err == nil {
		err = bw.Flush()
	}
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return nil, n, err
	}
	data, err := os.ReadFile(outPath)
	return data, n, err
}
