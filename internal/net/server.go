package net

import (
	"fmt"
	"net"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

// Server accepts websocket connections on /ws and creates Sessions.
// New/dead sessions are communicated to the game loop via channels.
type Server struct {
	listener    net.Listener
	httpSrv     *http.Server
	upgrader    websocket.Upgrader
	nextID      atomic.Uint64
	newConns    chan *Session
	deadCh      chan uint64 // session IDs of dead sessions
	inSize      int
	outSize     int
	msgPerSec   int
	readTimeout time.Duration
	log         *zap.Logger
	closeCh     chan struct{}
}

func NewServer(bindAddr string, inSize, outSize, msgPerSec int, readTimeout time.Duration, log *zap.Logger) (*Server, error) {
	ln, err := net.Listen("tcp", bindAddr)
	if err != nil {
		return nil, err
	}
	s := &Server{
		listener: ln,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 4096,
			// Room codes are the only admission control; browsers on any
			// origin may connect.
			CheckOrigin: func(*http.Request) bool { return true },
		},
		newConns:    make(chan *Session, 64),
		deadCh:      make(chan uint64, 64),
		inSize:      inSize,
		outSize:     outSize,
		msgPerSec:   msgPerSec,
		readTimeout: readTimeout,
		log:         log,
		closeCh:     make(chan struct{}),
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.handleWS)
	s.httpSrv = &http.Server{Handler: mux}
	return s, nil
}

// Serve runs in its own goroutine and blocks until Shutdown.
func (s *Server) Serve() {
	if err := s.httpSrv.Serve(s.listener); err != nil && err != http.ErrServerClosed {
		select {
		case <-s.closeCh:
		default:
			s.log.Error("HTTP 服務中止", zap.Error(err))
		}
	}
}

// handleWS upgrades the HTTP request, creates a session, and pushes it onto
// the newConns channel for the game loop to adopt.
func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.Debug("升級 websocket 失敗", zap.Error(err))
		return
	}

	id := s.nextID.Add(1)
	sess := NewSession(conn, id, s.inSize, s.outSize, s.msgPerSec, s.readTimeout, s.log)
	sess.Start()

	s.log.Info(fmt.Sprintf("玩家連線  session=%d  ip=%s", id, sess.IP))

	select {
	case s.newConns <- sess:
	default:
		s.log.Warn("連線佇列已滿，拒絕新連線")
		sess.Close()
	}
}

// NewSessions returns the channel of newly connected sessions.
func (s *Server) NewSessions() <-chan *Session {
	return s.newConns
}

// NotifyDead reports a dead session ID to the game loop.
func (s *Server) NotifyDead(sessionID uint64) {
	select {
	case s.deadCh <- sessionID:
	default:
	}
}

// DeadSessions returns the channel of dead session IDs.
func (s *Server) DeadSessions() <-chan uint64 {
	return s.deadCh
}

// Shutdown stops accepting new connections.
func (s *Server) Shutdown() {
	close(s.closeCh)
	s.httpSrv.Close()
}

// Addr returns the listener's address.
func (s *Server) Addr() net.Addr {
	return s.listener.Addr()
}
