package dashboard

import (
	"smartdir/internal/api"
	"smartdir/internal/directory"
	"smartdir/internal/panel"
)

// PartnerStore is everything the Socios tab does with the backend.
type PartnerStore interface {
	panel.Loader[directory.Partner]
	panel.Saver[directory.Partner]
	panel.Deleter
}

// DeletableStore backs the read/delete tabs.
type DeletableStore[T directory.Record] interface {
	panel.Loader[T]
	panel.Deleter
}

// LogStore backs the Logs tab, which only clears in bulk.
type LogStore interface {
	panel.Loader[directory.LogEntry]
	panel.Clearer
}

// Backend groups the four collections the dashboard manages.
type Backend struct {
	Partners        PartnerStore
	Recommendations DeletableStore[directory.Recommendation]
	Conversations   DeletableStore[directory.Conversation]
	Logs            LogStore
}

// BackendFromClient wires every tab to the REST client.
func BackendFromClient(c *api.Client) Backend {
	return Backend{
		Partners:        c.Partners(),
		Recommendations: c.Recommendations(),
		Conversations:   c.Conversations(),
		Logs:            c.Logs(),
	}
}
