// Package discovery finds local git repositories and feeds them into the
// backing collection, so the picker can offer working copies alongside the
// repositories listed in the manifest.
package discovery

import (
	"context"
	"fmt"
	"io/fs"
	"log"
	"path/filepath"
	"strings"
	"sync"

	"repopick/internal/collection"
	"repopick/internal/domain"
	"repopick/internal/eventbus"
)

// Service scans the filesystem for git repositories
type Service interface {
	StartScan(ctx context.Context, roots []string) error
	StopScan()
}

// service is the concrete implementation
type service struct {
	bus        eventbus.EventBus
	coll       *collection.Collection
	mu         sync.Mutex
	isScanning bool
	cancelFunc context.CancelFunc
	wg         sync.WaitGroup
}

// New creates a new discovery service that adds found repositories to coll
func New(bus eventbus.EventBus, coll *collection.Collection) Service {
	return &service{
		bus:  bus,
		coll: coll,
	}
}

// StartScan starts scanning for git repositories under the given roots
func (s *service) StartScan(ctx context.Context, roots []string) error {
	s.mu.Lock()
	if s.isScanning {
		s.mu.Unlock()
		return fmt.Errorf("scan already in progress")
	}
	s.isScanning = true

	scanCtx, cancel := context.WithCancel(ctx)
	s.cancelFunc = cancel
	s.mu.Unlock()

	s.bus.Publish(eventbus.ScanStartedEvent{Roots: roots})

	reposFound := 0

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		defer func() {
			s.mu.Lock()
			s.isScanning = false
			s.cancelFunc = nil
			s.mu.Unlock()

			s.bus.Publish(eventbus.ScanCompletedEvent{ReposFound: reposFound})
		}()

		for _, root := range roots {
			select {
			case <-scanCtx.Done():
				return
			default:
				reposFound += s.scanDirectory(scanCtx, root)
			}
		}
	}()

	return nil
}

// StopScan stops any ongoing scan
func (s *service) StopScan() {
	s.mu.Lock()
	if s.cancelFunc != nil {
		s.cancelFunc()
	}
	s.mu.Unlock()

	s.wg.Wait()
}

// scanDirectory recursively scans a directory for git repositories
func (s *service) scanDirectory(ctx context.Context, root string) int {
	reposFound := 0
	maxDepth := 5

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if err != nil {
			log.Printf("Error walking path %s: %v", path, err)
			return nil // Continue walking
		}

		if !d.IsDir() {
			return nil
		}

		relPath, _ := filepath.Rel(root, path)
		depth := strings.Count(relPath, string(filepath.Separator))
		if depth > maxDepth {
			return filepath.SkipDir
		}

		// Found a git repository - the parent is the repo root
		if d.Name() == ".git" {
			repoPath := filepath.Dir(path)
			s.coll.Add(domain.Repository{
				Name:    filepath.Base(repoPath),
				Path:    repoPath,
				Tool:    "Git",
				Visible: true,
			})
			reposFound++
			return fs.SkipDir
		}

		// Skip hidden directories and common non-repository trees
		if strings.HasPrefix(d.Name(), ".") && d.Name() != "." {
			return fs.SkipDir
		}
		switch d.Name() {
		case "node_modules", "vendor", "target", "build", "dist", "__pycache__", "venv":
			return fs.SkipDir
		}

		return nil
	})

	if err != nil && err != context.Canceled {
		log.Printf("Error scanning directory %s: %v", root, err)
		s.bus.Publish(eventbus.ErrorEvent{
			Message: fmt.Sprintf("Failed to scan %s", root),
			Err:     err,
		})
	}

	return reposFound
}
