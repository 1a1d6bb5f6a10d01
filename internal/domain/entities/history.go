package entities

import (
	"sort"
	"time"
)

// HistoryOptions tunes a commit-graph walk.
type HistoryOptions struct {
	// IncludeRootCommit counts every file of a root commit's tree as changed
	// by that commit. Off by default: a commit without parents has nothing
	// to diff against.
	IncludeRootCommit bool `yaml:"include_root_commit"`
	// TreeCacheSize bounds the number of decoded trees kept during the walk.
	TreeCacheSize int `yaml:"tree_cache_size"`
}

// SourceFileChangeFrequency captures how often a file changed relative to the
// whole history.
type SourceFileChangeFrequency struct {
	FileCommits  int     `json:"file_commits"`
	TotalCommits int     `json:"total_commits"`
	Frequency    float64 `json:"frequency"`
}

// NewSourceFileChangeFrequency computes fileCommits/totalCommits*100, defined
// as 0 for a history without commits.
func NewSourceFileChangeFrequency(fileCommits, totalCommits int) SourceFileChangeFrequency {
	return SourceFileChangeFrequency{
		FileCommits:  fileCommits,
		TotalCommits: totalCommits,
		Frequency:    Percentage(float64(fileCommits), float64(totalCommits)),
	}
}

// CommitHistory is the result of a single walk over a repository's commits.
type CommitHistory struct {
	TotalCommits int
	Contributors []Contributor
	fileCommits  map[string]int
}

// NewCommitHistory builds a CommitHistory. fileCommits maps slash-separated
// repository paths to the number of commits that touched them.
func NewCommitHistory(totalCommits int, fileCommits map[string]int, contributors []Contributor) *CommitHistory {
	if fileCommits == nil {
		fileCommits = make(map[string]int)
	}
	if contributors == nil {
		contributors = []Contributor{}
	}
	return &CommitHistory{
		TotalCommits: totalCommits,
		Contributors: contributors,
		fileCommits:  fileCommits,
	}
}

// ChangeFrequency returns the change-frequency record for a repository path.
func (h *CommitHistory) ChangeFrequency(path string) SourceFileChangeFrequency {
	return NewSourceFileChangeFrequency(h.fileCommits[path], h.TotalCommits)
}

// Contributor aggregates the commits of one author name.
type Contributor struct {
	Name                   string     `json:"name"`
	LastContribution       time.Time  `json:"last_contribution"`
	PercentageContribution float64    `json:"percentage_contribution"`
	Statistics             Statistics `json:"statistics"`
}

// ContributorTally accumulates author activity while commits are walked.
// Percentages are only computed by Contributors, after the walk.
type ContributorTally struct {
	byName map[string]*Contributor
	total  int
}

// NewContributorTally creates an empty tally.
func NewContributorTally() *ContributorTally {
	return &ContributorTally{byName: make(map[string]*Contributor)}
}

// Record counts one commit by name authored at when.
func (t *ContributorTally) Record(name string, when time.Time) {
	when = when.UTC()
	contributor, ok := t.byName[name]
	if !ok {
		contributor = &Contributor{Name: name, LastContribution: when}
		t.byName[name] = contributor
	}
	contributor.Statistics.NumCommits++
	if when.After(contributor.LastContribution) {
		contributor.LastContribution = when
	}
	t.total++
}

// Total returns the number of recorded commits.
func (t *ContributorTally) Total() int { return t.total }

// Contributors returns one entry per author, most active first and by name
// on equal commit counts.
func (t *ContributorTally) Contributors() []Contributor {
	result := make([]Contributor, 0, len(t.byName))
	for _, contributor := range t.byName {
		c := *contributor
		c.PercentageContribution = Percentage(float64(c.Statistics.NumCommits), float64(t.total))
		result = append(result, c)
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].Statistics.NumCommits != result[j].Statistics.NumCommits {
			return result[i].Statistics.NumCommits > result[j].Statistics.NumCommits
		}
		return result[i].Name < result[j].Name
	})
	return result
}
