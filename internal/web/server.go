package web

import (
	"embed"
	"encoding/json"
	"io"
	"io/fs"
	"log"
	"net"
	"net/http"
	"os"

	"github.com/coder/websocket"
	"github.com/oshifan/hocgsim/internal/catalog"
)

//go:embed static
var staticFiles embed.FS

// CardInfo is the JSON representation of a catalog record for the
// /api/cards endpoint.
type CardInfo struct {
	Number  string   `json:"number"`
	Kind    string   `json:"kind"`
	Name    string   `json:"name"`
	Color   string   `json:"color,omitempty"`
	Colors  []string `json:"colors,omitempty"`
	HP      int      `json:"hp,omitempty"`
	Level   string   `json:"level,omitempty"`
	Buzz    bool     `json:"buzz,omitempty"`
	SupKind string   `json:"support_kind,omitempty"`
	Limited bool     `json:"limited,omitempty"`
}

// LoadoutInfo is the JSON representation of a loadout file for the
// /api/loadout endpoint.
type LoadoutInfo struct {
	Lead      string   `json:"lead"`
	MainDeck  []string `json:"main_deck"`
	CheerDeck []string `json:"cheer_deck"`
}

// Server is the hocgsim web UI server: it serves a small read-only
// spectator page, a catalog browser API, and a raw JSON proxy between a
// browser WebSocket and a match server's TCP protocol (internal/net).
type Server struct {
	catalog     *catalog.Catalog
	loadoutFile string
	mux         *http.ServeMux
}

// NewServer creates a new web server.
func NewServer(cat *catalog.Catalog, loadoutFile string) (*Server, error) {
	s := &Server{catalog: cat, loadoutFile: loadoutFile, mux: http.NewServeMux()}
	s.setupRoutes()
	return s, nil
}

func (s *Server) setupRoutes() {
	staticFS, _ := fs.Sub(staticFiles, "static")

	s.mux.HandleFunc("GET /", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		f, err := staticFS.Open("index.html")
		if err != nil {
			http.Error(w, "not found", http.StatusNotFound)
			return
		}
		defer f.Close()
		io.Copy(w, f.(io.Reader))
	})

	s.mux.Handle("GET /static/", http.StripPrefix("/static/", http.FileServer(http.FS(staticFS))))

	s.mux.HandleFunc("GET /api/cards", s.handleCards)
	s.mux.HandleFunc("GET /api/loadout", s.handleLoadout)

	s.mux.HandleFunc("GET /ws", s.handleWebSocket)
}

func (s *Server) handleCards(w http.ResponseWriter, r *http.Request) {
	var cards []CardInfo
	for _, number := range s.catalog.Numbers() {
		rec, err := s.catalog.Lookup(number)
		if err != nil {
			continue
		}
		cards = append(cards, cardInfo(rec))
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(cards)
}

func cardInfo(rec *catalog.Record) CardInfo {
	ci := CardInfo{Number: rec.Number, Kind: rec.Kind.String()}
	switch rec.Kind {
	case catalog.KindLead:
		ci.Name = rec.Lead.Name
		ci.Color = rec.Lead.Color.String()
	case catalog.KindMember:
		ci.Name = rec.Member.Name
		ci.HP = rec.Member.HP
		ci.Level = rec.Member.Level.String()
		ci.Buzz = rec.Member.Buzz
		for _, c := range rec.Member.Colors {
			ci.Colors = append(ci.Colors, c.String())
		}
	case catalog.KindSupport:
		ci.Name = rec.Support.Name
		ci.SupKind = rec.Support.Kind.String()
		ci.Limited = rec.Support.Limited
	case catalog.KindCheer:
		ci.Name = rec.Cheer.Name
		ci.Color = rec.Cheer.Color.String()
	}
	return ci
}

func (s *Server) handleLoadout(w http.ResponseWriter, r *http.Request) {
	data, err := os.ReadFile(s.loadoutFile)
	if err != nil {
		http.Error(w, "could not read loadout file", http.StatusInternalServerError)
		return
	}

	f, err := parseLoadoutYAML(data)
	if err != nil {
		http.Error(w, "could not parse loadout file", http.StatusInternalServerError)
		return
	}

	info := LoadoutInfo{Lead: f.Lead}
	for _, e := range f.MainDeck {
		info.MainDeck = append(info.MainDeck, e.Number)
	}
	for _, e := range f.CheerDeck {
		info.CheerDeck = append(info.CheerDeck, e.Number)
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(info)
}

// handleWebSocket proxies raw JSON messages between a browser WebSocket
// connection and a match server's TCP protocol 1:1 — the proxy itself
// never interprets the JSON it forwards.
func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	wsConn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		InsecureSkipVerify: true,
	})
	if err != nil {
		log.Printf("WebSocket accept error: %v", err)
		return
	}
	defer wsConn.CloseNow()

	ctx := r.Context()

	_, connectData, err := wsConn.Read(ctx)
	if err != nil {
		log.Printf("WebSocket read connect: %v", err)
		return
	}

	var connectMsg struct {
		Type        string `json:"type"`
		Addr        string `json:"addr"`
		LoadoutFile string `json:"loadout_file"`
	}
	if err := json.Unmarshal(connectData, &connectMsg); err != nil || connectMsg.Type != "connect" {
		wsConn.Close(websocket.StatusPolicyViolation, "expected connect message")
		return
	}

	tcpConn, err := net.Dial("tcp", connectMsg.Addr)
	if err != nil {
		errMsg, _ := json.Marshal(map[string]string{
			"type":   "error",
			"result": "could not connect to match server: " + err.Error(),
		})
		wsConn.Write(ctx, websocket.MessageText, errMsg)
		wsConn.Close(websocket.StatusNormalClosure, "connection failed")
		return
	}
	defer tcpConn.Close()

	joinMsg, _ := json.Marshal(map[string]interface{}{
		"type":         "join",
		"loadout_file": connectMsg.LoadoutFile,
	})
	joinMsg = append(joinMsg, '\n')
	if _, err := tcpConn.Write(joinMsg); err != nil {
		log.Printf("TCP write join: %v", err)
		return
	}

	done := make(chan struct{})

	go func() {
		defer close(done)
		dec := json.NewDecoder(tcpConn)
		for {
			var msg json.RawMessage
			if err := dec.Decode(&msg); err != nil {
				if err != io.EOF {
					log.Printf("TCP read error: %v", err)
				}
				return
			}
			if err := wsConn.Write(ctx, websocket.MessageText, msg); err != nil {
				log.Printf("WebSocket write error: %v", err)
				return
			}
		}
	}()

	go func() {
		for {
			_, data, err := wsConn.Read(ctx)
			if err != nil {
				return
			}
			data = append(data, '\n')
			if _, err := tcpConn.Write(data); err != nil {
				log.Printf("TCP write error: %v", err)
				return
			}
		}
	}()

	<-done
	wsConn.Close(websocket.StatusNormalClosure, "match ended")
}

// ListenAndServe starts the HTTP server.
func (s *Server) ListenAndServe(addr string) error {
	return http.ListenAndServe(addr, s.mux)
}
