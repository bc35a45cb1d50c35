package lsp

import (
	"sync"

	"go.lsp.dev/protocol"
)

// document is an open text document as last sent by the client
type document struct {
	text    string
	version int32
}

// documentStore tracks open documents by URI
type documentStore struct {
	mu   sync.RWMutex
	docs map[protocol.DocumentURI]document
}

func newDocumentStore() *documentStore {
	return &documentStore{docs: make(map[protocol.DocumentURI]document)}
}

func (s *documentStore) set(uri protocol.DocumentURI, text string, version int32) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.docs[uri] = document{text: text, version: version}
}

func (s *documentStore) get(uri protocol.DocumentURI) (document, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	doc, ok := s.docs[uri]
	return doc, ok
}

func (s *documentStore) remove(uri protocol.DocumentURI) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.docs, uri)
}

func (s *documentStore) len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.docs)
}
