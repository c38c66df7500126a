// Package mcp runs the stdio side of the Model Context Protocol: newline
// delimited JSON-RPC 2.0 requests on stdin, one response per request on
// stdout. All decision logic lives behind the tool registry; this package
// only frames.
package mcp

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/jayra/tradebot/pkg/tools"
)

// maxLineSize bounds a single request line (1 MiB). Oversized lines are
// answered with a parse error and skipped; they never end the session.
const maxLineSize = 1 << 20

var errLineTooLong = errors.New("request line too long")

// Server serves MCP requests from a single peer, one at a time. No request
// overlaps another; a tool call runs to completion, gateway round-trip
// included, before the next line is read.
type Server struct {
	name     string
	version  string
	registry *tools.Registry
	in       io.Reader
	out      io.Writer
}

// NewServer creates an MCP server over in/out (normally stdin/stdout).
func NewServer(name, version string, registry *tools.Registry, in io.Reader, out io.Writer) *Server {
	return &Server{
		name:     name,
		version:  version,
		registry: registry,
		in:       in,
		out:      out,
	}
}

// Run processes requests until the input stream closes or ctx is done.
func (s *Server) Run(ctx context.Context) error {
	reader := bufio.NewReaderSize(s.in, 64*1024)

	log.Info().Str("server", s.name).Int("tools", s.registry.Len()).Msg("MCP server listening on stdio")

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		line, err := readLine(reader)
		if errors.Is(err, errLineTooLong) {
			log.Warn().Msg("Request line exceeds size limit")
			s.writeError(json.RawMessage("null"), codeParseError, "parse error: request line too long")
			continue
		}
		if err != nil && err != io.EOF {
			return fmt.Errorf("stdio read failed: %w", err)
		}

		if len(line) > 0 {
			var req request
			if jsonErr := json.Unmarshal(line, &req); jsonErr != nil {
				log.Warn().Err(jsonErr).Msg("Malformed request line")
				s.writeError(json.RawMessage("null"), codeParseError, "parse error")
			} else {
				s.handle(ctx, req)
			}
		}

		if err == io.EOF {
			log.Info().Msg("Input stream closed, shutting down")
			return nil
		}
	}
}

// readLine returns the next line without its terminator. A line longer than
// maxLineSize is drained to its newline and reported as errLineTooLong so the
// session can continue with the next request.
func readLine(r *bufio.Reader) ([]byte, error) {
	var line []byte
	for {
		chunk, err := r.ReadSlice('\n')
		if len(line)+len(chunk) > maxLineSize {
			if err := discardRestOfLine(r, err); err != nil {
				return nil, err
			}
			return nil, errLineTooLong
		}
		line = append(line, chunk...)

		switch err {
		case nil, io.EOF:
			return bytes.TrimRight(line, "\r\n"), err
		case bufio.ErrBufferFull:
			continue
		default:
			return nil, err
		}
	}
}

func discardRestOfLine(r *bufio.Reader, err error) error {
	for err == bufio.ErrBufferFull {
		_, err = r.ReadSlice('\n')
	}
	if err == nil || err == io.EOF {
		return nil
	}
	return err
}

func (s *Server) handle(ctx context.Context, req request) {
	requestID := uuid.NewString()
	logger := log.With().Str("request_id", requestID).Str("method", req.Method).Logger()

	switch req.Method {
	case "initialize":
		logger.Info().Msg("Initialize handshake")
		s.writeResult(req.ID, initializeResult{
			ProtocolVersion: protocolVersion,
			Capabilities:    capabilities{Tools: toolsCapability{}},
			ServerInfo:      serverInfo{Name: s.name, Version: s.version},
		})

	case "notifications/initialized":
		// Notification, no reply.

	case "ping":
		s.writeResult(req.ID, struct{}{})

	case "tools/list":
		descriptors := s.registry.Descriptors()
		logger.Debug().Int("count", len(descriptors)).Msg("Catalog listed")
		s.writeResult(req.ID, map[string]interface{}{"tools": descriptors})

	case "tools/call":
		var params callParams
		if err := json.Unmarshal(req.Params, &params); err != nil {
			s.writeError(req.ID, codeInvalidParams, "invalid tool call params")
			return
		}

		logger.Info().Str("tool", params.Name).Msg("Tool call")
		envelope := s.registry.Dispatch(ctx, params.Name, params.Arguments)

		// Tool failures stay inside the envelope; JSON-RPC errors are
		// reserved for protocol problems.
		s.writeResult(req.ID, callResult{
			Content: []textContent{{Type: "text", Text: envelope.Text()}},
			IsError: !envelope.Success,
		})

	default:
		if req.isNotification() {
			logger.Debug().Msg("Ignoring unknown notification")
			return
		}
		logger.Warn().Msg("Method not found")
		s.writeError(req.ID, codeMethodNotFound, fmt.Sprintf("method not found: %s", req.Method))
	}
}

func (s *Server) writeResult(id json.RawMessage, result interface{}) {
	s.write(response{JSONRPC: "2.0", Result: result, ID: id})
}

func (s *Server) writeError(id json.RawMessage, code int, message string) {
	s.write(response{JSONRPC: "2.0", Error: &rpcError{Code: code, Message: message}, ID: id})
}

func (s *Server) write(resp response) {
	data, err := json.Marshal(resp)
	if err != nil {
		log.Error().Err(err).Msg("Failed to marshal response")
		return
	}

	if _, err := s.out.Write(append(data, '\n')); err != nil {
		log.Error().Err(err).Msg("Failed to write response")
	}
}
