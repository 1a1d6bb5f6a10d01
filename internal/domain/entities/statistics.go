package entities

// Statistics holds size, line and commit counters. The same record is used for
// files, languages, contributors and the whole repository.
//
// Frequency is the commit-change ratio (commits touching the owner divided by
// all repository commits, times 100). It is only meaningful for files; the
// repository keeps it at zero. Language line share lives in
// LanguageType.Percentage instead.
type Statistics struct {
	Size       int64   `json:"size"`
	LOC        int64   `json:"loc"`
	NumFiles   int     `json:"num_files"`
	NumCommits int     `json:"num_commits"`
	Frequency  float64 `json:"frequency"`
}

// Add accumulates the counters of other into s. Frequency is left untouched
// because ratios with different denominators cannot be summed.
func (s *Statistics) Add(other Statistics) {
	s.Size += other.Size
	s.LOC += other.LOC
	s.NumFiles += other.NumFiles
	s.NumCommits += other.NumCommits
}

// Percentage returns part/total*100, or 0 when total is not positive.
func Percentage(part, total float64) float64 {
	if total <= 0 {
		return 0
	}
	return part / total * 100 //nolint:mnd // percent
}
