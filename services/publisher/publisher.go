package publisher

// Publisher pushes scraped job postings to downstream consumers.
type Publisher interface {
	// Publish sends one posting payload tagged with its source domain
	Publish(source string, payload []byte) error

	// TrimStreams caps retained stream length
	TrimStreams() error

	// Close releases the underlying connection
	Close() error
}
