package httpapi

import (
	"encoding/json"
	"net/http"
	"sync/atomic"

	"autoapply-engine/internal/config"
	"autoapply-engine/internal/secrets"
)

type SecretsHandler struct {
	CfgVal *atomic.Value // stores config.Config
}

type setIMAPPasswordReq struct {
	Password string `json:"password"`
}

func (h SecretsHandler) SetIMAPPassword(w http.ResponseWriter, r *http.Request) {
	var req setIMAPPasswordReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid json", http.StatusBadRequest)
		return
	}

	cfg := h.CfgVal.Load().(config.Config)
	if err := secrets.Set(secrets.IMAPKeyringAccount(cfg), req.Password); err != nil {
		http.Error(w, "failed to store password: "+err.Error(), http.StatusBadRequest)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type setAdzunaKeysReq struct {
	AppID  string `json:"app_id"`
	AppKey string `json:"app_key"`
}

func (h SecretsHandler) SetAdzunaKeys(w http.ResponseWriter, r *http.Request) {
	var req setAdzunaKeysReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid json", http.StatusBadRequest)
		return
	}

	if err := secrets.Set(secrets.AccountAdzunaAppID, req.AppID); err != nil {
		http.Error(w, "failed to store app id: "+err.Error(), http.StatusBadRequest)
		return
	}
	if err := secrets.Set(secrets.AccountAdzunaAppKey, req.AppKey); err != nil {
		http.Error(w, "failed to store app key: "+err.Error(), http.StatusBadRequest)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
