package batch

import (
	"context"
	"fmt"
	"hash/fnv"
	"io"
	"os"
	"sync"
)

const precheckBufferSize = 64 * 1024

var precheckBuffers = &sync.Pool{
	New: func() any {
		buf := make([]byte, precheckBufferSize)
		return &buf
	},
}

// identicalFiles reports whether two files carry the same bytes, using
// a size check first and a streaming FNV-1a content hash after. Pairs
// that pass skip the full diff entirely.
func identicalFiles(ctx context.Context, oldPath, newPath string) (bool, error) {
	oldInfo, err := os.Stat(oldPath)
	if err != nil {
		return false, fmt.Errorf("failed to stat old file: %w", err)
	}
	newInfo, err := os.Stat(newPath)
	if err != nil {
		return false, fmt.Errorf("failed to stat new file: %w", err)
	}

	// If sizes differ, content differs
	if oldInfo.Size() != newInfo.Size() {
		return false, nil
	}

	// Hash both sides in parallel
	var oldSum, newSum uint64
	var oldErr, newErr error
	var wg sync.WaitGroup

	wg.Add(2)
	go func() {
		defer wg.Done()
		oldSum, oldErr = contentHash(ctx, oldPath)
	}()
	go func() {
		defer wg.Done()
		newSum, newErr = contentHash(ctx, newPath)
	}()
	wg.Wait()

	if oldErr != nil {
		return false, fmt.Errorf("failed to hash old file: %w", oldErr)
	}
	if newErr != nil {
		return false, fmt.Errorf("failed to hash new file: %w", newErr)
	}

	return oldSum == newSum, nil
}

// contentHash computes the FNV-1a hash of a file using streaming reads
func contentHash(ctx context.Context, path string) (uint64, error) {
	file, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	hasher := fnv.New64a()

	bufPtr := precheckBuffers.Get().(*[]byte)
	buffer := *bufPtr
	defer precheckBuffers.Put(bufPtr)

	for {
		// Check context cancellation
		select {
		case <-ctx.Done():
			return 0, ctx.Err()
		default:
		}

		n, err := file.Read(buffer)
		if n > 0 {
			hasher.Write(buffer[:n])
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return 0, fmt.Errorf("failed to read file: %w", err)
		}
	}

	return hasher.Sum64(), nil
}
