// Package logship moves request log entries from Kafka into a search index.
package logship

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/segmentio/kafka-go"
	log "github.com/sirupsen/logrus"

	"pulse/pkg/api"
)

// Reader is the part of *kafka.Reader the keeper consumes.
type Reader interface {
	ReadMessage(ctx context.Context) (kafka.Message, error)
}

// Indexer stores one document under docID.
type Indexer interface {
	Index(ctx context.Context, index, docID string, body []byte) error
}

type ESIndexer struct {
	es *elasticsearch.Client
}

func NewESIndexer(es *elasticsearch.Client) *ESIndexer {
	return &ESIndexer{es: es}
}

func (i *ESIndexer) Index(ctx context.Context, index, docID string, body []byte) error {
	res, err := i.es.Index(
		index,
		bytes.NewReader(body),
		i.es.Index.WithDocumentID(docID),
		i.es.Index.WithContext(ctx),
	)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	if res.IsError() {
		return fmt.Errorf("index %s: %s", index, res.Status())
	}
	return nil
}

type Keeper struct {
	idx        Indexer
	index      string
	numWorkers int
}

func NewKeeper(idx Indexer, index string, numWorkers int) *Keeper {
	return &Keeper{idx: idx, index: index, numWorkers: max(1, numWorkers)}
}

// Run reads messages until ctx is cancelled and fans them out to the workers.
// It returns once every worker has exited.
func (k *Keeper) Run(ctx context.Context, r Reader) {
	jobs := make(chan kafka.Message, k.numWorkers*5)
	var wg sync.WaitGroup
	wg.Add(k.numWorkers)
	for workerID := 0; workerID < k.numWorkers; workerID++ {
		go func(id int) {
			defer wg.Done()
			k.work(ctx, jobs, id)
		}(workerID)
	}

	log.Info("[logkeeper] accepting logs...")
	for {
		msg, err := r.ReadMessage(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				break
			}
			log.Errorf("[logkeeper] failed to read message from Kafka: %v", err)
			continue
		}
		log.Debugf("[logkeeper] received message: %s", string(msg.Value))

		select {
		case jobs <- msg:
		case <-ctx.Done():
		}
	}

	close(jobs)
	wg.Wait()
}

func (k *Keeper) work(ctx context.Context, jobs <-chan kafka.Message, workerID int) {
	for {
		select {
		case <-ctx.Done():
			log.Infof("[logkeeper][workerID:%d] context cancelled, exiting worker", workerID)
			return

		case msg, ok := <-jobs:
			if !ok {
				log.Infof("[logkeeper][workerID:%d] jobs channel closed, exiting worker", workerID)
				return
			}
			if err := k.Handle(ctx, msg); err != nil {
				log.Errorf("[logkeeper][workerID:%d] %v", workerID, err)
			}
		}
	}
}

// Handle indexes a single message. The document ID is the service name
// followed by the request ID, so a redelivered entry overwrites itself.
func (k *Keeper) Handle(ctx context.Context, msg kafka.Message) error {
	var entry api.LogEntry
	if err := json.Unmarshal(msg.Value, &entry); err != nil {
		return fmt.Errorf("failed to unmarshal log entry: %w", err)
	}

	if err := k.idx.Index(ctx, k.index, entry.Service+entry.RequestID, msg.Value); err != nil {
		return fmt.Errorf("failed to index document: %w", err)
	}
	log.Debugf("[logkeeper][%s] log entry indexed", shorten(entry.RequestID))

	return nil
}

func shorten(s string) string {
	if len(s) > 6 {
		return s[:6] + "..."
	}
	return s
}
