// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package dataset

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/tidwall/gjson"
	"golang.org/x/sync/errgroup"

	"github.com/tfctl/colpick/internal/aws"
	"github.com/tfctl/colpick/internal/cacheutil"
	"github.com/tfctl/colpick/internal/log"
)

// Stdin is the source name that reads standard input.
const Stdin = "-"

// maxConcurrentLoads bounds LoadAll's parallelism.
const maxConcurrentLoads = 8

// ErrNoRows is returned when a document holds neither an array nor an
// object at the parent path.
var ErrNoRows = errors.New("no rows")

// Loader reads and parses dataset sources.
type Loader struct {
	// Parent is the gjson path of the rows within each document.
	Parent string
	// Stdin replaces os.Stdin for the "-" source.
	Stdin io.Reader
	// S3 serves s3:// sources. When nil a client is built on first use from
	// the default AWS chain and AWSOptions.
	S3         aws.ObjectGetter
	AWSOptions []aws.Option
	// Endpoint overrides the S3 endpoint, for S3 compatible stores.
	Endpoint string
	// Cache, when set, serves s3:// sources from disk while fresh.
	Cache *cacheutil.Store

	s3Once sync.Once
	s3Err  error
}

// Load reads the rows of a single source.
func (l *Loader) Load(ctx context.Context, source string) ([]gjson.Result, error) {
	data, err := l.read(ctx, source)
	if err != nil {
		return nil, err
	}

	rows, err := Parse(data, l.Parent)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", source, err)
	}
	log.Debugf("dataset loaded: source=%s rows=%d", source, len(rows))
	return rows, nil
}

// LoadAll loads sources concurrently and concatenates their rows in
// argument order. No sources reads stdin. The first failure cancels the
// remaining loads.
func (l *Loader) LoadAll(ctx context.Context, sources []string) ([]gjson.Result, error) {
	if len(sources) == 0 {
		sources = []string{Stdin}
	}

	stdins := 0
	for _, s := range sources {
		if s == Stdin {
			stdins++
		}
	}
	if stdins > 1 {
		return nil, fmt.Errorf("stdin (%q) may be given only once", Stdin)
	}

	results := make([][]gjson.Result, len(sources))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentLoads)

	for i, source := range sources {
		g.Go(func() error {
			rows, err := l.Load(gctx, source)
			if err != nil {
				return err
			}
			results[i] = rows
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	var all []gjson.Result
	for _, rows := range results {
		all = append(all, rows...)
	}
	return all, nil
}

// Parse returns the rows of a JSON document. parent may be empty.
func Parse(data []byte, parent string) ([]gjson.Result, error) {
	if !gjson.ValidBytes(data) {
		return nil, errors.New("invalid JSON document")
	}

	doc := gjson.ParseBytes(data)
	if parent != "" {
		doc = doc.Get(parent)
		if !doc.Exists() {
			return nil, fmt.Errorf("%w: parent %q not found", ErrNoRows, parent)
		}
	}

	switch {
	case doc.IsArray():
		return doc.Array(), nil
	case doc.IsObject():
		return []gjson.Result{doc}, nil
	default:
		return nil, fmt.Errorf("%w: document is a %s", ErrNoRows, doc.Type)
	}
}

func (l *Loader) read(ctx context.Context, source string) ([]byte, error) {
	if source == Stdin {
		r := l.Stdin
		if r == nil {
			r = os.Stdin
		}
		return io.ReadAll(r)
	}

	bucket, key, isS3, err := aws.ParseURI(source)
	if err != nil {
		return nil, err
	}
	if isS3 {
		if data, ok := l.Cache.Get("s3", source); ok {
			return data, nil
		}
		svc, err := l.s3Client(ctx)
		if err != nil {
			return nil, err
		}
		data, err := aws.ReadObject(ctx, svc, bucket, key)
		if err != nil {
			return nil, err
		}
		if err := l.Cache.Put("s3", source, data); err != nil {
			log.WithError(err).Warnf("cache write failed: source=%s", source)
		}
		return data, nil
	}

	return os.ReadFile(source)
}

func (l *Loader) s3Client(ctx context.Context) (aws.ObjectGetter, error) {
	l.s3Once.Do(func() {
		if l.S3 != nil {
			return
		}
		cfg, err := aws.LoadAWSConfig(ctx, l.AWSOptions...)
		if err != nil {
			l.s3Err = fmt.Errorf("failed to load AWS config: %w", err)
			return
		}
		if l.Endpoint != "" {
			l.S3 = aws.NewS3(cfg, aws.WithEndpoint(l.Endpoint))
			return
		}
		l.S3 = aws.NewS3(cfg)
	})
	return l.S3, l.s3Err
}
