package rag

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/ledongthuc/pdf"
	"golang.org/x/sync/errgroup"

	"github.com/docuwise/legal-assistant/internal/llm"
	"github.com/docuwise/legal-assistant/pkg/logger"
	"github.com/docuwise/legal-assistant/pkg/vectorstore"
)

// ErrNotPDF rejects index builds on anything but a PDF document.
var ErrNotPDF = errors.New("RAG chatbot only supports PDF files")

const (
	defaultChunkSize    = 1000
	defaultChunkOverlap = 200

	// embedBatchSize texts per embedding request, embedMaxConcurrent
	// requests in flight at once.
	embedBatchSize     = 16
	embedMaxConcurrent = 4
)

// Indexer builds per-session chunk indices.
type Indexer struct {
	embedder llm.Embedder
	splitter *Splitter
	logger   logger.Logger

	// PersistDir, when set, places each index in a database file under
	// this directory instead of memory.
	PersistDir string
}

func NewIndexer(embedder llm.Embedder, log logger.Logger) *Indexer {
	return &Indexer{
		embedder: embedder,
		splitter: NewSplitter(defaultChunkSize, defaultChunkOverlap),
		logger:   log,
	}
}

// pageText is one PDF page's extracted text.
type pageText struct {
	number int
	text   string
}

// Build loads the document fresh, splits it into overlapping chunks,
// embeds them and returns a vector store holding the index. Only PDFs are
// accepted; callers must reject other types up front for a clean client
// error.
func (ix *Indexer) Build(ctx context.Context, filename string, r io.Reader) (*vectorstore.Store, error) {
	if strings.ToLower(filepath.Ext(filename)) != ".pdf" {
		return nil, ErrNotPDF
	}

	pages, err := loadPDFPages(r)
	if err != nil {
		return nil, fmt.Errorf("loading document: %w", err)
	}
	ix.logger.Info("document loaded", logger.Int("pages", len(pages)))

	var chunks []vectorstore.Chunk
	for _, page := range pages {
		for _, fragment := range ix.splitter.Split(page.text) {
			chunks = append(chunks, vectorstore.Chunk{Content: fragment, Page: page.number})
		}
	}
	if len(chunks) == 0 {
		return nil, fmt.Errorf("document produced no text chunks")
	}
	ix.logger.Info("document split", logger.Int("chunks", len(chunks)))

	embeddings, err := ix.embedChunks(ctx, chunks)
	if err != nil {
		return nil, fmt.Errorf("embedding chunks: %w", err)
	}

	store, err := ix.newStore(len(embeddings[0]))
	if err != nil {
		return nil, fmt.Errorf("creating vector store: %w", err)
	}

	if err := store.Add(ctx, chunks, embeddings); err != nil {
		store.Close()
		return nil, fmt.Errorf("indexing chunks: %w", err)
	}

	return store, nil
}

func (ix *Indexer) newStore(dim int) (*vectorstore.Store, error) {
	if ix.PersistDir == "" {
		return vectorstore.NewMemory(dim)
	}
	f, err := os.CreateTemp(ix.PersistDir, "index-*.db")
	if err != nil {
		return nil, err
	}
	path := f.Name()
	f.Close()
	return vectorstore.NewPersistent(path, dim)
}

// embedChunks embeds all chunks in bounded-concurrency batches, keeping
// results index-aligned with the input.
func (ix *Indexer) embedChunks(ctx context.Context, chunks []vectorstore.Chunk) ([][]float32, error) {
	embeddings := make([][]float32, len(chunks))
	var mu sync.Mutex

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(embedMaxConcurrent)

	for start := 0; start < len(chunks); start += embedBatchSize {
		start := start
		end := start + embedBatchSize
		if end > len(chunks) {
			end = len(chunks)
		}

		g.Go(func() error {
			texts := make([]string, end-start)
			for i := start; i < end; i++ {
				texts[i-start] = chunks[i].Content
			}

			vecs, err := ix.embedder.Embed(ctx, texts)
			if err != nil {
				return err
			}
			if len(vecs) != len(texts) {
				return fmt.Errorf("embedder returned %d vectors for %d texts", len(vecs), len(texts))
			}

			mu.Lock()
			copy(embeddings[start:end], vecs)
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return embeddings, nil
}

// loadPDFPages extracts each page's text in page order.
func loadPDFPages(r io.Reader) ([]pageText, error) {
	content, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	reader := bytes.NewReader(content)
	pdfReader, err := pdf.NewReader(reader, reader.Size())
	if err != nil {
		return nil, err
	}

	var pages []pageText
	for i := 1; i <= pdfReader.NumPage(); i++ {
		page := pdfReader.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			return nil, fmt.Errorf("failed to get text from page %d: %w", i, err)
		}
		pages = append(pages, pageText{number: i, text: text})
	}
	return pages, nil
}
