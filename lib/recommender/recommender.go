package recommender

// Provider is the external decision capability that turns a structured
// prompt into a free-text recommendation. Replies are untrusted and must
// be validated by the caller (see ExtractJSONBlock).
type Provider interface {
	Generate(system, text string) (reply string, err error)
}
