// seehuhn.de/go/sheet - variable-data ticket sheets
// Copyright (C) 2026  Jochen Voss <voss@seehuhn.de>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

// Package fontcache downloads font files and keeps them by name, so that
// repeated requests for the same font do not hit the network again.
//
// The cache is shared between callers and is safe for concurrent use.
// Fonts are kept in a [Store], either in memory or in a Redis database
// shared between processes.
package fontcache

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"

	"golang.org/x/sync/singleflight"

	"seehuhn.de/go/sheet"
)

// MaxSize is the largest font file which will be downloaded.
const MaxSize = 32 << 20

// StatusError is returned when the server responds to a font download
// with a status other than 2xx.
type StatusError struct {
	Name   string
	URL    string
	Status int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("fontcache: fetching %q from %s: %d %s",
		e.Name, e.URL, e.Status, http.StatusText(e.Status))
}

// Cache fetches fonts over HTTP and remembers them by name.
type Cache struct {
	store  Store
	client *http.Client
	group  singleflight.Group
}

// New returns a cache which keeps fonts in store.  If store is nil, fonts
// are kept in memory.  If client is nil, [http.DefaultClient] is used.
func New(store Store, client *http.Client) *Cache {
	if store == nil {
		store = NewMemoryStore()
	}
	if client == nil {
		client = http.DefaultClient
	}
	return &Cache{store: store, client: client}
}

// Load returns the font called name.  If the font is not yet known, it is
// downloaded from url and stored.  Concurrent loads of the same name share
// one download.
//
// The shared download is not tied to any single caller: if ctx is
// cancelled, Load returns ctx.Err() while the download continues for the
// other callers.
//
// The returned slice belongs to the caller.
func (c *Cache) Load(ctx context.Context, name, url string) ([]byte, error) {
	data, ok, err := c.store.Get(ctx, name)
	if err != nil {
		return nil, err
	}
	if ok {
		return data, nil
	}

	shared := context.WithoutCancel(ctx)
	ch := c.group.DoChan(name, func() (any, error) {
		data, ok, err := c.store.Get(shared, name)
		if err != nil {
			return nil, err
		}
		if ok {
			return data, nil
		}

		data, err = c.fetch(shared, name, url)
		if err != nil {
			return nil, err
		}
		if err := c.store.Set(shared, name, data); err != nil {
			return nil, err
		}
		return data, nil
	})
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return bytes.Clone(res.Val.([]byte)), nil
	}
}

// Forget removes the font called name from the cache, so that the next
// call to [Cache.Load] downloads it again.
func (c *Cache) Forget(ctx context.Context, name string) error {
	return c.store.Delete(ctx, name)
}

// Clear removes all fonts from the cache.
func (c *Cache) Clear(ctx context.Context) error {
	return c.store.Clear(ctx)
}

func (c *Cache) fetch(ctx context.Context, name, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("fontcache: fetching %q: %w", name, err)
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fontcache: fetching %q: %w", name, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &StatusError{Name: name, URL: url, Status: resp.StatusCode}
	}
	data, err := io.ReadAll(io.LimitReader(resp.Body, MaxSize+1))
	if err != nil {
		return nil, fmt.Errorf("fontcache: fetching %q: %w", name, err)
	}
	if len(data) > MaxSize {
		return nil, fmt.Errorf("fontcache: font %q exceeds %d bytes", name, MaxSize)
	}

	sheet.Logger().Info("fetched font", "name", name, "url", url, "bytes", len(data))
	return data, nil
}
