package server

import (
	"net/http"

	"ssb_courier/dal"
	"ssb_courier/logic"
	"ssb_courier/shared"
)

type apiHandlerGroup struct {
	cfg      *shared.Config
	logger   shared.ILogger
	repo     dal.IRepo
	registry logic.IFeedRegistry
}

func NewApiHandlerGroup(
	cfg *shared.Config,
	logger shared.ILogger,
	repo dal.IRepo,
	registry logic.IFeedRegistry,
) IHandlerGroup {
	res := apiHandlerGroup{
		cfg:      cfg,
		logger:   logger,
		repo:     repo,
		registry: registry,
	}
	return &res
}

func (hg *apiHandlerGroup) Prefix() string {
	return "/api"
}

func (hg *apiHandlerGroup) GroupDefs() []handlerDef {
	return []handlerDef{
		{"GET", "/status", func(w http.ResponseWriter, r *http.Request) { hg.getStatus(w, r) }},
	}
}

func (hg *apiHandlerGroup) AuthMW() func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return hg.authMW(next)
	}
}

func (hg *apiHandlerGroup) authMW(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var apiKey = r.Header.Get(apiKeyHeader)
		found := false
		for _, key := range hg.cfg.Secrets.ApiKeys {
			if apiKey == key {
				found = true
			}
		}
		if !found {
			hg.logger.Warn("API request with missing or invalid key")
			writeErrorResponse(w, badApiKeyStr, http.StatusUnauthorized)
			return
		}
		next.ServeHTTP(w, r)
	})
}

type feedStatusResp struct {
	Url        string `json:"url"`
	SbotName   string `json:"sbot"`
	RefreshSec int    `json:"refreshSec"`
}

type statusResp struct {
	Entries *dal.StatusCounts `json:"entries"`
	Feeds   []feedStatusResp  `json:"feeds"`
}

func (hg *apiHandlerGroup) getStatus(w http.ResponseWriter, r *http.Request) {

	hg.logger.Infof("Handling status GET: %s", r.URL.Path)

	counts, err := hg.repo.GetStatusCounts()
	if err != nil {
		hg.logger.Errorf("Failed to read status counts: %v", err)
		writeErrorResponse(w, internalErrorStr, http.StatusInternalServerError)
		return
	}
	resp := statusResp{Entries: counts, Feeds: []feedStatusResp{}}
	for _, fd := range hg.registry.All() {
		resp.Feeds = append(resp.Feeds, feedStatusResp{
			Url:        fd.Url,
			SbotName:   fd.SbotName,
			RefreshSec: int(fd.Refresh.Seconds()),
		})
	}
	writeJsonResponse(hg.logger, w, resp)
}
