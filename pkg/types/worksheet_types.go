package types

// ExerciseInfo describes one exercise for listings.
type ExerciseInfo struct {
	Number   int      `json:"number"`
	Name     string   `json:"name"`
	Title    string   `json:"title"`
	Disabled bool     `json:"disabled,omitempty"`
	Paths    []string `json:"paths,omitempty"`
}

// SheetInfo describes one worksheet for listings.
type SheetInfo struct {
	Name      string         `json:"name"`
	Title     string         `json:"title"`
	Exercises []ExerciseInfo `json:"exercises"`
}

// RunResponse carries the narration of a sheet run.
type RunResponse struct {
	Sheet     string   `json:"sheet"`
	Variant   string   `json:"variant"`
	Enable    []string `json:"enable,omitempty"`
	Narration string   `json:"narration"`
	Panic     string   `json:"panic,omitempty"` // Set when an opted-in crash path fired
}

// CompareResponse carries the buggy-vs-fixed diff of a sheet.
type CompareResponse struct {
	Sheet string `json:"sheet"`
	Diff  string `json:"diff"`
	Same  bool   `json:"same"`
}

// ResultResponse carries the result of calling one exercise function.
type ResultResponse struct {
	Function string `json:"function"`
	Variant  string `json:"variant,omitempty"`
	Result   any    `json:"result"`
}
