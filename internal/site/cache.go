package site

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/splshield/splshield-web/internal/config"
)

// cacheItem stores a rendered document and its metadata for HTTP caching.
type cacheItem struct {
	data         []byte
	contentType  string
	lang         string
	etag         string
	lastModified string // RFC1123 format required by HTTP headers
}

func newCacheItem(data []byte, contentType, lang string, modified time.Time) *cacheItem {
	hash := sha256.Sum256(data)
	return &cacheItem{
		data:         data,
		contentType:  contentType,
		lang:         lang,
		etag:         fmt.Sprintf(config.FormatETag, hex.EncodeToString(hash[:])),
		lastModified: modified.UTC().Format(http.TimeFormat),
	}
}

// snapshot is one complete render of the site. It is replaced as a whole.
type snapshot struct {
	pages    map[string]*cacheItem // keyed by pageKey
	calendar *cacheItem
	card     *cacheItem
	deadline time.Time
	builtAt  time.Time
}

func pageKey(lang, route string) string {
	return lang + " " + route
}

// allowRead rejects everything but GET and HEAD.
func allowRead(w http.ResponseWriter, r *http.Request) bool {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		w.Header().Set(config.HeaderAllow, config.AllowedMethods)
		http.Error(w, config.HTTPMsgMethodNotAll, http.StatusMethodNotAllowed)
		return false
	}
	return true
}

// serveItem writes item with conditional request support.
// A nil item means the first render has not finished yet.
func serveItem(w http.ResponseWriter, r *http.Request, item *cacheItem) {
	if item == nil {
		w.Header().Set(config.HeaderRetryAfter, config.RetryAfterSeconds)
		http.Error(w, config.HTTPMsgInitializing, http.StatusServiceUnavailable)
		return
	}

	w.Header().Set(config.HeaderContentType, item.contentType)
	w.Header().Set(config.HeaderXContentType, config.MimeNoSniff)
	w.Header().Set(config.HeaderCacheControl, config.CacheControlPublic)
	w.Header().Set(config.HeaderETag, item.etag)
	w.Header().Set(config.HeaderLastModified, item.lastModified)
	if item.lang != "" {
		w.Header().Set(config.HeaderContentLanguage, item.lang)
		w.Header().Set(config.HeaderVary, config.HeaderAcceptLanguage)
	}

	if match := r.Header.Get(config.HeaderIfNoneMatch); match == item.etag {
		w.WriteHeader(http.StatusNotModified)
		return
	}

	if since := r.Header.Get(config.HeaderIfModifiedSince); since != "" && r.Header.Get(config.HeaderIfNoneMatch) == "" {
		if clientTime, err := time.Parse(http.TimeFormat, since); err == nil {
			if serverTime, err := time.Parse(http.TimeFormat, item.lastModified); err == nil {
				if !serverTime.After(clientTime) {
					w.WriteHeader(http.StatusNotModified)
					return
				}
			}
		}
	}

	if r.Method == http.MethodGet {
		if _, err := io.Copy(w, bytes.NewReader(item.data)); err != nil {
			slog.Error(config.ErrWriteResp,
				config.LogKeyComponent, config.CompServer,
				config.LogKeyError, err,
			)
		}
	}
}
