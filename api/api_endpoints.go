package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/hoardcache/hoard/log"
	"github.com/hoardcache/hoard/util"

	"github.com/go-chi/chi/v5"
)

const (
	contentTypeHeader      = "content-type"
	jsonContentType        = "application/json"
	octetStreamContentType = "application/octet-stream"
)

// CacheControl interface to access and modify the named caches
type CacheControl interface {
	Caches() []CacheInfo
	Snapshot(cache string) map[string]CacheEntry
	Get(cache, key string) ([]byte, bool)
	Has(cache, key string) bool
	Put(cache, key string, value []byte, deadline time.Time)
	PutIfAbsent(cache, key string, value []byte, deadline time.Time) ([]byte, bool)
	Remove(cache, key string, expected []byte) ([]byte, bool)
	Replace(cache, key string, old, value []byte, deadline time.Time) bool
	Drop(cache string) bool
}

// Sweeper interface to trigger an expiry sweep over all caches
type Sweeper interface {
	Sweep() int
}

// StatsProvider interface to retrieve usage statistics
type StatsProvider interface {
	Stats() StatsResult
}

// CacheEndpoint endpoint for the cache access
type CacheEndpoint struct {
	control CacheControl
}

// SweepEndpoint endpoint for the explicit sweep
type SweepEndpoint struct {
	sweeper Sweeper
}

// StatsEndpoint endpoint for the usage statistics
type StatsEndpoint struct {
	provider StatsProvider
}

// RegisterEndpoint registers an implementation as HTTP endpoint
func RegisterEndpoint(router chi.Router, t interface{}) {
	if a, ok := t.(CacheControl); ok {
		registerCacheEndpoints(router, a)
	}

	if a, ok := t.(Sweeper); ok {
		registerSweepEndpoints(router, a)
	}

	if a, ok := t.(StatsProvider); ok {
		registerStatsEndpoints(router, a)
	}
}

func registerCacheEndpoints(router chi.Router, control CacheControl) {
	e := &CacheEndpoint{control}
	// register API endpoints
	router.Get(PathCaches, e.apiCacheList)
	router.Get(PathCache, e.apiCacheSnapshot)
	router.Delete(PathCache, e.apiCacheDrop)
	router.Get(PathCacheEntry, e.apiEntryGet)
	router.Head(PathCacheEntry, e.apiEntryHead)
	router.Put(PathCacheEntry, e.apiEntryPut)
	router.Delete(PathCacheEntry, e.apiEntryRemove)
	router.Post(PathCacheEntryReplace, e.apiEntryReplace)
}

func registerSweepEndpoints(router chi.Router, sweeper Sweeper) {
	e := &SweepEndpoint{sweeper}

	router.Post(PathSweep, e.apiSweep)
}

func registerStatsEndpoints(router chi.Router, provider StatsProvider) {
	e := &StatsEndpoint{provider}

	router.Get(PathStats, e.apiStats)
}

// apiCacheList is the http endpoint to list all named caches
// @Summary Cache list
// @Description get all named caches with their live entry counts
// @Tags caches
// @Produce  json
// @Success 200 {object} []api.CacheInfo "Returns all named caches"
// @Router /caches [get]
func (e *CacheEndpoint) apiCacheList(rw http.ResponseWriter, _ *http.Request) {
	rw.Header().Set(contentTypeHeader, jsonContentType)

	response, err := json.Marshal(e.control.Caches())
	util.LogOnError("unable to marshal response ", err)

	_, err = rw.Write(response)
	util.LogOnError("unable to write response ", err)
}

// apiCacheSnapshot is the http endpoint to get all live entries of a cache
// @Summary Cache snapshot
// @Description get all live entries of the named cache with values and expiry times
// @Tags caches
// @Param cacheName path string true "cache name"
// @Produce  json
// @Success 200 {object} map[string]api.CacheEntry "Returns all live entries"
// @Router /caches/{cacheName} [get]
func (e *CacheEndpoint) apiCacheSnapshot(rw http.ResponseWriter, req *http.Request) {
	cache := pathParam(req, "cacheName")

	rw.Header().Set(contentTypeHeader, jsonContentType)

	response, err := json.Marshal(e.control.Snapshot(cache))
	util.LogOnError("unable to marshal response ", err)

	_, err = rw.Write(response)
	util.LogOnError("unable to write response ", err)
}

// apiCacheDrop is the http endpoint to drop a named cache
// @Summary Cache drop
// @Description drop the named cache with all its entries
// @Tags caches
// @Param cacheName path string true "cache name"
// @Success 200   "Cache was dropped"
// @Router /caches/{cacheName} [delete]
func (e *CacheEndpoint) apiCacheDrop(rw http.ResponseWriter, req *http.Request) {
	cache := pathParam(req, "cacheName")

	log.Log().Infof("dropping cache '%s'...", log.EscapeInput(cache))

	e.control.Drop(cache)

	rw.Header().Set(contentTypeHeader, jsonContentType)

	_, err := rw.Write([]byte("{}"))
	if err != nil {
		log.Log().Error("can't send an empty answer: ", log.EscapeInput(err.Error()))
	}
}

// apiEntryGet is the http endpoint to get the value of a cache entry
// @Summary Entry get
// @Description get the value of a cache entry, expired entries are reported as absent
// @Tags entries
// @Param cacheName path string true "cache name"
// @Param key path string true "entry key"
// @Produce  octet-stream
// @Success 200 {string} string "Returns the value bytes"
// @Failure 404   "No live entry for the key"
// @Router /caches/{cacheName}/entries/{key} [get]
func (e *CacheEndpoint) apiEntryGet(rw http.ResponseWriter, req *http.Request) {
	value, found := e.control.Get(pathParam(req, "cacheName"), pathParam(req, "key"))
	if !found {
		rw.WriteHeader(http.StatusNotFound)

		return
	}

	rw.Header().Set(contentTypeHeader, octetStreamContentType)

	_, err := rw.Write(value)
	util.LogOnError("unable to write response ", err)
}

// apiEntryHead is the http endpoint to check the existence of a cache entry
// @Summary Entry existence
// @Description check if a live entry exists for the key
// @Tags entries
// @Param cacheName path string true "cache name"
// @Param key path string true "entry key"
// @Success 200   "A live entry exists"
// @Failure 404   "No live entry for the key"
// @Router /caches/{cacheName}/entries/{key} [head]
func (e *CacheEndpoint) apiEntryHead(rw http.ResponseWriter, req *http.Request) {
	if !e.control.Has(pathParam(req, "cacheName"), pathParam(req, "key")) {
		rw.WriteHeader(http.StatusNotFound)

		return
	}

	rw.WriteHeader(http.StatusOK)
}

// apiEntryPut is the http endpoint to store a cache entry
// @Summary Entry put
// @Description store the request body as entry value, optionally only if no live entry exists
// @Tags entries
// @Param cacheName path string true "cache name"
// @Param key path string true "entry key"
// @Param ttl query string false "relative TTL (Example: 300s, 5m, 1h, 5m30s)" Format(duration)
// @Param expires query string false "absolute expiry time in RFC 3339 format" Format(dateTime)
// @Param ifAbsent query bool false "store only if no live entry exists"
// @Produce  octet-stream
// @Success 200 {string} string "Returns the winning value bytes"
// @Failure 400   "Wrong expiry parameter"
// @Failure 409   "An existing live entry won, body contains its value"
// @Router /caches/{cacheName}/entries/{key} [put]
func (e *CacheEndpoint) apiEntryPut(rw http.ResponseWriter, req *http.Request) {
	cache := pathParam(req, "cacheName")
	key := pathParam(req, "key")

	deadline, err := parseDeadline(req.URL.Query().Get("ttl"), req.URL.Query().Get("expires"))
	if err != nil {
		log.Log().Error("wrong expiry parameter: ", log.EscapeInput(err.Error()))
		rw.WriteHeader(http.StatusBadRequest)

		return
	}

	value, err := io.ReadAll(req.Body)
	if err != nil {
		log.Log().Error("can't read request body: ", err)
		rw.WriteHeader(http.StatusBadRequest)

		return
	}

	rw.Header().Set(contentTypeHeader, octetStreamContentType)

	ifAbsent, _ := strconv.ParseBool(req.URL.Query().Get("ifAbsent"))
	if ifAbsent {
		winner, stored := e.control.PutIfAbsent(cache, key, value, deadline)
		if !stored {
			rw.WriteHeader(http.StatusConflict)
		}

		_, err = rw.Write(winner)
		util.LogOnError("unable to write response ", err)

		return
	}

	e.control.Put(cache, key, value, deadline)

	_, err = rw.Write(value)
	util.LogOnError("unable to write response ", err)
}

// apiEntryRemove is the http endpoint to remove a cache entry
// @Summary Entry remove
// @Description remove the entry for the key, a request body restricts the removal to the expected value
// @Tags entries
// @Param cacheName path string true "cache name"
// @Param key path string true "entry key"
// @Produce  octet-stream
// @Success 200 {string} string "Returns the removed value bytes"
// @Failure 404   "No live entry was removed"
// @Router /caches/{cacheName}/entries/{key} [delete]
func (e *CacheEndpoint) apiEntryRemove(rw http.ResponseWriter, req *http.Request) {
	cache := pathParam(req, "cacheName")
	key := pathParam(req, "key")

	expected, err := io.ReadAll(req.Body)
	if err != nil {
		log.Log().Error("can't read request body: ", err)
		rw.WriteHeader(http.StatusBadRequest)

		return
	}

	value, removed := e.control.Remove(cache, key, expected)
	if !removed {
		rw.WriteHeader(http.StatusNotFound)

		return
	}

	rw.Header().Set(contentTypeHeader, octetStreamContentType)

	_, err = rw.Write(value)
	util.LogOnError("unable to write response ", err)
}

// apiEntryReplace is the http endpoint to replace the value of a live entry
// @Summary Entry replace
// @Description replace the value of a live entry, optionally only if the current value matches the expected one
// @Tags entries
// @Param cacheName path string true "cache name"
// @Param key path string true "entry key"
// @Param request body api.ReplaceRequest true "replace request"
// @Accept  json
// @Produce  json
// @Success 200 {object} api.ReplaceResult "Reports whether the value was replaced"
// @Failure 400   "Wrong request body or expiry parameter"
// @Router /caches/{cacheName}/entries/{key}/replace [post]
func (e *CacheEndpoint) apiEntryReplace(rw http.ResponseWriter, req *http.Request) {
	cache := pathParam(req, "cacheName")
	key := pathParam(req, "key")

	var request ReplaceRequest
	if err := json.NewDecoder(req.Body).Decode(&request); err != nil {
		log.Log().Error("can't parse the replace request: ", log.EscapeInput(err.Error()))
		rw.WriteHeader(http.StatusBadRequest)

		return
	}

	deadline, err := parseDeadline(request.TTL, request.Expires)
	if err != nil {
		log.Log().Error("wrong expiry parameter: ", log.EscapeInput(err.Error()))
		rw.WriteHeader(http.StatusBadRequest)

		return
	}

	replaced := e.control.Replace(cache, key, request.Old, request.New, deadline)

	rw.Header().Set(contentTypeHeader, jsonContentType)

	response, err := json.Marshal(ReplaceResult{Replaced: replaced})
	util.LogOnError("unable to marshal response ", err)

	_, err = rw.Write(response)
	util.LogOnError("unable to write response ", err)
}

// apiSweep is the http endpoint to trigger an explicit sweep
// @Summary Sweep
// @Description remove all expired entries from all caches
// @Tags sweep
// @Produce  json
// @Success 200 {object} api.SweepResult "Returns the number of removed entries"
// @Router /sweep [post]
func (e *SweepEndpoint) apiSweep(rw http.ResponseWriter, _ *http.Request) {
	log.Log().Info("sweeping expired entries...")

	removed := e.sweeper.Sweep()

	rw.Header().Set(contentTypeHeader, jsonContentType)

	response, err := json.Marshal(SweepResult{Removed: removed})
	util.LogOnError("unable to marshal response ", err)

	_, err = rw.Write(response)
	util.LogOnError("unable to write response ", err)
}

// apiStats is the http endpoint to get the usage statistics
// @Summary Usage statistics
// @Description get the hourly aggregated usage statistics and the current hot keys
// @Tags stats
// @Produce  json
// @Success 200 {object} api.StatsResult "Returns the usage statistics"
// @Router /stats [get]
func (e *StatsEndpoint) apiStats(rw http.ResponseWriter, _ *http.Request) {
	result := e.provider.Stats()

	rw.Header().Set(contentTypeHeader, jsonContentType)

	response, err := json.Marshal(result)
	util.LogOnError("unable to marshal response ", err)

	_, err = rw.Write(response)
	util.LogOnError("unable to write response ", err)
}

// pathParam returns the unescaped named route parameter
func pathParam(req *http.Request, name string) string {
	value := chi.URLParam(req, name)

	if unescaped, err := url.PathUnescape(value); err == nil {
		return unescaped
	}

	return value
}

// parseDeadline resolves a relative ttl or an absolute expiry time to the deadline,
// empty parameters mean no expiry
func parseDeadline(ttlParam, expiresParam string) (time.Time, error) {
	if ttlParam != "" && expiresParam != "" {
		return time.Time{}, errors.New("ttl and expires are mutually exclusive")
	}

	if ttlParam != "" {
		ttl, err := time.ParseDuration(ttlParam)
		if err != nil {
			return time.Time{}, fmt.Errorf("wrong ttl format '%s'", ttlParam)
		}

		if ttl < 0 {
			return time.Time{}, fmt.Errorf("negative ttl '%s'", ttlParam)
		}

		if ttl == 0 {
			return time.Time{}, nil
		}

		return time.Now().Add(ttl), nil
	}

	if expiresParam != "" {
		deadline, err := time.Parse(time.RFC3339, expiresParam)
		if err != nil {
			return time.Time{}, fmt.Errorf("wrong expires format '%s'", expiresParam)
		}

		return deadline, nil
	}

	return time.Time{}, nil
}
