package client

import (
	"bytes"
	"fmt"
	"mime/multipart"

	"github.com/rvasani/shopcopilot/internal/chat"
)

// encodeTurn builds the multipart/form-data body for one turn. Pure data
// shaping, no I/O. Parts:
//
//	message  always present, may be the empty string
//	image    file part, only when an attachment was staged
//	token    only when the session is authenticated
//
// The caller guarantees the request is non-empty (text or attachment); an
// all-empty request is guarded one level up, in the session controller.
func encodeTurn(req chat.TurnRequest) (*bytes.Buffer, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	if err := w.WriteField("message", req.Message); err != nil {
		return nil, "", fmt.Errorf("write message part: %w", err)
	}

	if req.ImageData != nil {
		name := req.ImageName
		if name == "" {
			name = "upload"
		}
		part, err := w.CreateFormFile("image", name)
		if err != nil {
			return nil, "", fmt.Errorf("create image part: %w", err)
		}
		if _, err := part.Write(req.ImageData); err != nil {
			return nil, "", fmt.Errorf("write image part: %w", err)
		}
	}

	if req.Token != "" {
		if err := w.WriteField("token", req.Token); err != nil {
			return nil, "", fmt.Errorf("write token part: %w", err)
		}
	}

	if err := w.Close(); err != nil {
		return nil, "", fmt.Errorf("close multipart writer: %w", err)
	}
	return &buf, w.FormDataContentType(), nil
}
