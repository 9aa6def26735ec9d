// Package translog implements manifest storage against a transparency-log
// service over HTTP. Each log entry pins the manifest by the CID of its
// canonical JSON; retrieval recomputes the CID so a tampered entry can
// never be returned as valid.
package translog

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/provenact/provenact/cidutil"
	"github.com/provenact/provenact/errs"
	"github.com/provenact/provenact/manifest"
	"github.com/provenact/provenact/storage"
)

func init() {
	storage.Register("rekor", func(opts storage.Options) (storage.Backend, error) {
		return New(opts.URL)
	})
}

// entry is the wire form of one log record.
type entry struct {
	ID       string             `json:"id"`
	CID      string             `json:"cid"`
	Manifest *manifest.Manifest `json:"manifest"`
}

// Backend talks to a transparency-log service.
type Backend struct {
	base   string
	client *http.Client
}

// New validates the service URL and returns a client with a bounded
// request timeout.
func New(base string) (*Backend, error) {
	if base == "" {
		return nil, errs.New(errs.KindValidation, "transparency log URL is empty")
	}
	if _, err := url.ParseRequestURI(base); err != nil {
		return nil, errs.Wrap(errs.KindValidation, err, "invalid transparency log URL %q", base)
	}
	return &Backend{
		base:   strings.TrimRight(base, "/"),
		client: &http.Client{Timeout: 30 * time.Second},
	}, nil
}

func (b *Backend) Store(id string, m *manifest.Manifest) error {
	canonical, err := m.CanonicalJSON()
	if err != nil {
		return err
	}
	body, err := json.Marshal(entry{
		ID:       id,
		CID:      cidutil.CIDv1RawSHA256(canonical),
		Manifest: m,
	})
	if err != nil {
		return errs.Wrap(errs.KindSerialization, err, "failed to encode log entry for %s", id)
	}

	resp, err := b.client.Post(b.base+"/manifests", "application/json", bytes.NewReader(body))
	if err != nil {
		return errs.Wrap(errs.KindStorage, err, "failed to submit manifest %s to transparency log", id)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return errs.New(errs.KindStorage, "transparency log rejected manifest %s: %s", id, resp.Status)
	}
	return nil
}

func (b *Backend) Retrieve(id string) (*manifest.Manifest, error) {
	resp, err := b.client.Get(b.base + "/manifests/" + url.PathEscape(id))
	if err != nil {
		return nil, errs.Wrap(errs.KindStorage, err, "failed to query transparency log for %s", id)
	}
	defer resp.Body.Close()
	if resp.StatusCode == http.StatusNotFound {
		return nil, errs.Wrap(errs.KindStorage, storage.ErrNotFound, "manifest %s", id)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, errs.New(errs.KindStorage, "transparency log lookup for %s failed: %s", id, resp.Status)
	}

	var e entry
	if err := json.NewDecoder(resp.Body).Decode(&e); err != nil {
		return nil, errs.Wrap(errs.KindSerialization, err, "failed to decode log entry for %s", id)
	}
	if e.Manifest == nil {
		return nil, errs.New(errs.KindStorage, "log entry for %s carries no manifest", id)
	}

	canonical, err := e.Manifest.CanonicalJSON()
	if err != nil {
		return nil, err
	}
	if got := cidutil.CIDv1RawSHA256(canonical); got != e.CID {
		return nil, errs.New(errs.KindValidation,
			"log entry for %s failed integrity check: entry CID %s, computed %s", id, e.CID, got)
	}
	return e.Manifest, nil
}

func (b *Backend) List() ([]storage.Metadata, error) {
	resp, err := b.client.Get(b.base + "/manifests")
	if err != nil {
		return nil, errs.Wrap(errs.KindStorage, err, "failed to list transparency log entries")
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, errs.New(errs.KindStorage, "transparency log listing failed: %s", resp.Status)
	}

	var entries []entry
	if err := json.NewDecoder(resp.Body).Decode(&entries); err != nil {
		return nil, errs.Wrap(errs.KindSerialization, err, "failed to decode log entries")
	}
	out := make([]storage.Metadata, 0, len(entries))
	for _, e := range entries {
		if e.Manifest == nil {
			continue
		}
		out = append(out, storage.Describe(e.ID, e.Manifest))
	}
	return out, nil
}

func (b *Backend) Delete(id string) error {
	req, err := http.NewRequest(http.MethodDelete, b.base+"/manifests/"+url.PathEscape(id), nil)
	if err != nil {
		return errs.Wrap(errs.KindStorage, err, "failed to build delete request for %s", id)
	}
	resp, err := b.client.Do(req)
	if err != nil {
		return errs.Wrap(errs.KindStorage, err, "failed to delete manifest %s from transparency log", id)
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)
	if resp.StatusCode == http.StatusNotFound {
		return errs.Wrap(errs.KindStorage, storage.ErrNotFound, "manifest %s", id)
	}
	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusNoContent {
		return errs.New(errs.KindStorage, "transparency log delete for %s failed: %s", id, resp.Status)
	}
	return nil
}
