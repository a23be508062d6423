package corpus

// DefaultDocuments is the built-in corpus used when no file is given.
// Deliberately small: enough for the refuse-or-cite evaluation to have
// answerable and unanswerable questions.
var DefaultDocuments = []Document{
	{
		ID:    "d1",
		Title: "Company handbook",
		Passages: []string{
			"The quarterly review cycle runs in March, June, September and December.",
			"Remote employees must submit expense reports within thirty days of purchase.",
			"The support escalation path goes from tier one to tier two within four hours.",
		},
	},
	{
		ID:    "d2",
		Title: "Product notes",
		Passages: []string{
			"The export feature writes CSV files encoded as UTF-8 with a header row.",
			"Rate limits reset every sixty seconds for authenticated API clients.",
			"Webhook deliveries retry three times with exponential backoff.",
		},
	},
}

// NewDefault builds a Store over DefaultDocuments.
func NewDefault() *Store {
	return New(DefaultDocuments)
}
