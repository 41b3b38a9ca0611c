// Package registry holds the process-wide session state: upload metadata
// and answer-capable RAG handles, keyed by session id. State is disposable
// by design; it is initialized at startup and lost on restart.
package registry

import (
	"sort"
	"sync"

	"github.com/docuwise/legal-assistant/internal/models"
	"github.com/docuwise/legal-assistant/internal/rag"
)

// Registry mediates all session-state access so call sites never touch
// the maps directly and a future implementation can swap in an external
// store.
type Registry interface {
	PutFile(file models.UploadedFile)
	GetFile(sessionID string) (models.UploadedFile, bool)
	PutChat(sessionID string, session *rag.Session)
	GetChat(sessionID string) (*rag.Session, bool)
	// Delete removes the file entry and any chat handle for the id. It
	// returns the removed file metadata so the caller can delete the
	// backing file, and false if the id was already absent.
	Delete(sessionID string) (models.UploadedFile, bool)
	List() models.SessionList
}

// NewInMemory returns the in-process map-backed registry.
func NewInMemory() Registry {
	return &inMemory{
		files: make(map[string]models.UploadedFile),
		chats: make(map[string]*rag.Session),
	}
}

type inMemory struct {
	mu    sync.RWMutex
	files map[string]models.UploadedFile
	chats map[string]*rag.Session
}

func (r *inMemory) PutFile(file models.UploadedFile) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.files[file.SessionID] = file
}

func (r *inMemory) GetFile(sessionID string) (models.UploadedFile, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	f, ok := r.files[sessionID]
	return f, ok
}

func (r *inMemory) PutChat(sessionID string, session *rag.Session) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if prev, ok := r.chats[sessionID]; ok {
		prev.Close()
	}
	r.chats[sessionID] = session
}

func (r *inMemory) GetChat(sessionID string) (*rag.Session, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.chats[sessionID]
	return s, ok
}

func (r *inMemory) Delete(sessionID string) (models.UploadedFile, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	file, ok := r.files[sessionID]
	delete(r.files, sessionID)

	if chat, chatOK := r.chats[sessionID]; chatOK {
		chat.Close()
		delete(r.chats, sessionID)
	}

	return file, ok
}

func (r *inMemory) List() models.SessionList {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ids := make([]string, 0, len(r.files))
	for id := range r.files {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	return models.SessionList{
		UploadedFiles:     len(r.files),
		ActiveRAGSessions: len(r.chats),
		Sessions:          ids,
	}
}
