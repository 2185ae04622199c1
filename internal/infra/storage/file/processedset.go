// Package file provides durable storage adapters backed by plain files on
// the local filesystem. It covers the processed signature set and the
// transfer ledger for deployments that run without external infrastructure.
package file

import (
	"bufio"
	"context"
	"os"
	"strings"
	"sync"

	"github.com/gabapcia/solwatch/internal/pkg/types"
	"github.com/gabapcia/solwatch/internal/transferwatch"
)

// processedSet tracks processed transaction signatures in memory and mirrors
// every new entry to an append-only file, one signature per line.
type processedSet struct {
	mu   sync.Mutex
	seen types.Set[string]
	file *os.File
}

// Close releases the underlying file handle.
func (s *processedSet) Close() error {
	return s.file.Close()
}

// Contains reports whether the signature was already processed. Lookups are
// served from memory, so they never touch the filesystem.
func (s *processedSet) Contains(_ context.Context, signature string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.seen.Contains(signature), nil
}

// MarkProcessed records the signature in memory first and then appends it to
// the backing file. When the append fails the signature stays marked in
// memory, so the current run will not reprocess it even though a restart
// might.
func (s *processedSet) MarkProcessed(_ context.Context, signature string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.seen.Contains(signature) {
		return nil
	}
	s.seen.Add(signature)

	_, err := s.file.WriteString(signature + "\n")
	return err
}

// NewProcessedSet opens the signature file at path, creating it when absent,
// and loads every previously recorded signature into memory. Blank lines are
// ignored so a partially written trailing line cannot poison the set.
func NewProcessedSet(path string) (*processedSet, error) {
	file, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_RDWR, 0o644)
	if err != nil {
		return nil, err
	}

	seen := types.NewSet[string]()
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		signature := strings.TrimSpace(scanner.Text())
		if signature == "" {
			continue
		}

		seen.Add(signature)
	}

	if err := scanner.Err(); err != nil {
		_ = file.Close()
		return nil, err
	}

	return &processedSet{
		seen: seen,
		file: file,
	}, nil
}

// Ensure the set satisfies the ProcessedSet interface at compile time.
var _ transferwatch.ProcessedSet = (*processedSet)(nil)
