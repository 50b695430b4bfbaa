package net

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"os"

	"github.com/oshifan/hocgsim/internal/card"
	"github.com/oshifan/hocgsim/internal/catalog"
	"github.com/oshifan/hocgsim/internal/game"
	"github.com/oshifan/hocgsim/internal/loadout"
	"github.com/oshifan/hocgsim/internal/log"
)

// Server hosts a match between two TCP clients.
type Server struct {
	LoadoutFile string // host's loadout file
	Port        string
	Seed        int64
}

// Run starts the server, waits for a client to join, then runs the match.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", ":"+s.Port)
	if err != nil {
		return fmt.Errorf("listen: %w", err)
	}
	defer ln.Close()

	fmt.Printf("Waiting for opponent on port %s...\n", s.Port)

	conn, err := ln.Accept()
	if err != nil {
		return fmt.Errorf("accept: %w", err)
	}
	defer conn.Close()

	fmt.Printf("Opponent connected from %s\n", conn.RemoteAddr())

	dec := json.NewDecoder(conn)
	var joinMsg ClientMessage
	if err := dec.Decode(&joinMsg); err != nil {
		return fmt.Errorf("read join message: %w", err)
	}
	joinerFile := joinMsg.LoadoutFile
	if joinerFile == "" {
		return fmt.Errorf("join message carried no loadout file")
	}

	cat, err := catalog.New(catalog.Builtin())
	if err != nil {
		return fmt.Errorf("build catalog: %w", err)
	}

	hostLoadout, err := loadout.Parse(s.LoadoutFile)
	if err != nil {
		return fmt.Errorf("load host loadout: %w", err)
	}
	joinerLoadout, err := loadout.Parse(joinerFile)
	if err != nil {
		return fmt.Errorf("load joiner loadout: %w", err)
	}

	hostConn, hostServerConn := net.Pipe()

	logger := log.NewTextLogger(os.Stdout)

	// Setup (including mulligans and the RPS roll) runs with nil prompters,
	// which falls back to RandomPrompter: the network controllers need the
	// built State to serialize StateViews against, so they can't exist until
	// after Setup returns. Once the match is live, the real controllers take
	// over for every turn's decisions.
	director, err := game.NewMatch(ctx, cat, [2]*loadout.Loadout{hostLoadout, joinerLoadout}, s.Seed, nil, logger)
	if err != nil {
		return fmt.Errorf("setup match: %w", err)
	}

	hostCtrl := NewNetworkController(hostServerConn, card.PlayerOne, director.State)
	joinerCtrl := NewNetworkController(conn, card.PlayerTwo, director.State)
	director.Prompters = map[card.Player]game.Prompter{
		card.PlayerOne: hostCtrl,
		card.PlayerTwo: joinerCtrl,
	}

	errCh := make(chan error, 2)
	go func() {
		client := &Client{conn: hostConn, playerName: "P1"}
		errCh <- client.RunREPL(ctx)
	}()

	go func() {
		outcome, err := director.Run(ctx)
		if err != nil {
			errCh <- fmt.Errorf("match error: %w", err)
			return
		}

		reason := ""
		var winner *card.Player
		if outcome != nil {
			reason = outcome.Reason.String()
			winner = outcome.Winner
		}

		_ = joinerCtrl.SendGameOver(winner, reason)
		_ = hostCtrl.SendGameOver(winner, reason)

		errCh <- nil
	}()

	err = <-errCh
	return err
}
