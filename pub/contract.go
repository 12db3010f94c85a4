// Package pub is the boundary to the SSB side of the world. The sbot itself
// (replication, crypto, blob storage) stays external; this package only knows
// how to reach one instance's publish/blob-add surface and how to keep a
// cache of live connections.
package pub

import (
	"io"
)

//go:generate mockgen --build_flags=--mod=mod -destination ../test/mocks/mock_connection.go -package mocks ssb_courier/pub IConnection
//go:generate mockgen --build_flags=--mod=mod -destination ../test/mocks/mock_conn_manager.go -package mocks ssb_courier/pub IConnManager

// Mention is a structured reference embedded alongside post text: either a
// content-hash blob reference (all fields set) or a channel tag (link only).
type Mention struct {
	Link string `json:"link"`
	Name string `json:"name,omitempty"`
	Size int64  `json:"size,omitempty"`
	Type string `json:"type,omitempty"`
}

// PostMessage is the content payload published to an sbot log. Mentions is
// always serialized, even when empty, so size estimates match the wire form.
type PostMessage struct {
	Type     string     `json:"type"`
	Text     string     `json:"text"`
	Mentions []*Mention `json:"mentions"`
}

type PublishReceipt struct {
	Key      string `json:"key"`
	Sequence int64  `json:"sequence"`
}

// IConnection is one live link to an sbot instance. Publish and BlobAdd may
// be called concurrently by multiple posting workers.
type IConnection interface {
	SbotName() string
	Whoami() string
	Publish(msg *PostMessage) (*PublishReceipt, error)
	BlobAdd(r io.Reader) (hash string, err error)
	// Done is closed when the connection is no longer usable; the manager
	// uses it to evict the connection from its cache.
	Done() <-chan struct{}
	Close() error
}

// IConnector dials one sbot instance by name.
type IConnector interface {
	Connect(sbotName string) (IConnection, error)
}
