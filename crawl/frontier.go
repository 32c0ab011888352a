package crawl

// Target is a URL scheduled for fetching at a given link distance from the seed.
type Target struct {
	URL   string
	Depth int
}

// Frontier tracks crawl state for a level-synchronous breadth-first crawl.
//
// visited holds URLs whose fetch has concluded, successfully or not.
// found holds URLs that have ever been enqueued. A URL enters the next
// level at most once per run.
//
// Frontier is not safe for concurrent use.
type Frontier struct {
	maxDepth int
	next     []Target
	visited  map[string]struct{}
	found    map[string]struct{}
}

// NewFrontier returns a frontier seeded with seedURL at depth 0.
func NewFrontier(seedURL string, maxDepth int) *Frontier {
	return &Frontier{
		maxDepth: maxDepth,
		next:     []Target{{URL: seedURL, Depth: 0}},
		visited:  make(map[string]struct{}),
		found:    make(map[string]struct{}),
	}
}

// Len returns the number of targets waiting for the next level.
func (f *Frontier) Len() int {
	return len(f.next)
}

// NextLevel returns the pending targets within the depth limit that have
// not been visited, and clears the pending list.
func (f *Frontier) NextLevel() []Target {
	level := make([]Target, 0, len(f.next))
	seen := make(map[string]struct{}, len(f.next))
	for _, t := range f.next {
		if t.Depth > f.maxDepth {
			continue
		}
		if _, ok := f.visited[t.URL]; ok {
			continue
		}
		if _, ok := seen[t.URL]; ok {
			continue
		}
		seen[t.URL] = struct{}{}
		level = append(level, t)
	}
	f.next = nil
	return level
}

// MarkVisited records that the fetch of url has concluded.
func (f *Frontier) MarkVisited(url string) {
	f.visited[url] = struct{}{}
}

// VisitedCount returns the number of visited URLs.
func (f *Frontier) VisitedCount() int {
	return len(f.visited)
}

// Discover records url as linked from a page at parentDepth. It reports
// whether url was added to the next level. URLs already visited or found
// are ignored; URLs beyond the depth limit are marked found but not enqueued.
func (f *Frontier) Discover(url string, parentDepth int) bool {
	if _, ok := f.visited[url]; ok {
		return false
	}
	if _, ok := f.found[url]; ok {
		return false
	}
	f.found[url] = struct{}{}
	if parentDepth+1 > f.maxDepth {
		return false
	}
	f.next = append(f.next, Target{URL: url, Depth: parentDepth + 1})
	return true
}
