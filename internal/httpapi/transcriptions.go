package httpapi

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/stupiduntilnot/voxchat/internal/db"
)

// maxUploadBytes caps multipart parsing memory; larger files spill to disk.
const maxUploadBytes = 32 << 20

var allowedExtensions = map[string]bool{
	".mp3":  true,
	".wav":  true,
	".m4a":  true,
	".mp4":  true,
	".mpeg": true,
	".mpga": true,
	".webm": true,
}

func (h *Handler) createTranscription(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		respondError(w, http.StatusBadRequest, "invalid multipart form")
		return
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		respondError(w, http.StatusBadRequest, "No file provided")
		return
	}
	defer file.Close()

	if header.Filename == "" {
		respondError(w, http.StatusBadRequest, "No file provided")
		return
	}
	ext := strings.ToLower(filepath.Ext(header.Filename))
	if !allowedExtensions[ext] {
		respondError(w, http.StatusBadRequest, "Invalid file type. Allowed types: .mp3, .wav, .m4a, .mp4, .mpeg, .mpga, .webm")
		return
	}

	transcription, err := h.Transcribe.FromUpload(r.Context(), file, header.Filename)
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	respondJSON(w, http.StatusOK, transcription)
}

type realTimeRequest struct {
	AudioData     string `json:"audio_data"`
	FileExtension string `json:"file_extension"`
	SaveToDB      bool   `json:"save_to_db"`
}

type realTimeResponse struct {
	Transcription   string `json:"transcription"`
	TranscriptionID *int64 `json:"transcription_id"`
}

func (h *Handler) realTimeTranscription(w http.ResponseWriter, r *http.Request) {
	var req realTimeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	audio, err := base64.StdEncoding.DecodeString(req.AudioData)
	if err != nil {
		respondError(w, http.StatusBadRequest, "audio_data is not valid base64")
		return
	}

	text, transcription, err := h.Transcribe.FromData(r.Context(), audio, req.FileExtension, req.SaveToDB)
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	resp := realTimeResponse{Transcription: text}
	if transcription != nil {
		resp.TranscriptionID = &transcription.ID
	}
	respondJSON(w, http.StatusOK, resp)
}

func (h *Handler) getTranscription(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid transcription id")
		return
	}

	transcription, err := db.GetTranscription(h.DB, id)
	if err != nil {
		if errors.Is(err, db.ErrTranscriptionNotFound) {
			respondError(w, http.StatusNotFound, "Transcription not found")
			return
		}
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	respondJSON(w, http.StatusOK, transcription)
}

func (h *Handler) listTranscriptions(w http.ResponseWriter, r *http.Request) {
	transcriptions, err := db.ListTranscriptions(h.DB)
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if transcriptions == nil {
		transcriptions = []db.Transcription{}
	}
	respondJSON(w, http.StatusOK, transcriptions)
}
