package net

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"net"
	"os"
	"strconv"
	"strings"
)

// Client connects to a game server and provides a terminal REPL.
type Client struct {
	conn       net.Conn
	playerName string // "P1" or "P2"
}

// Connect connects to a server, sends the loadout choice, and runs the REPL.
func Connect(ctx context.Context, addr, loadoutFile string) error {
	conn, err := net.Dial("tcp", addr)
	if err != nil {
		return fmt.Errorf("connect: %w", err)
	}
	defer conn.Close()

	enc := json.NewEncoder(conn)
	if err := enc.Encode(ClientMessage{Type: "join", LoadoutFile: loadoutFile}); err != nil {
		return fmt.Errorf("send join: %w", err)
	}

	fmt.Println("Connected! Waiting for game to start...")

	client := &Client{conn: conn, playerName: "P2"}
	return client.RunREPL(ctx)
}

// RunREPL reads server messages and handles them interactively.
func (c *Client) RunREPL(ctx context.Context) error {
	dec := json.NewDecoder(c.conn)
	enc := json.NewEncoder(c.conn)
	reader := bufio.NewReader(os.Stdin)

	for {
		var msg ServerMessage
		if err := dec.Decode(&msg); err != nil {
			return fmt.Errorf("read message: %w", err)
		}

		switch msg.Type {
		case "notify":
			c.renderEvent(msg.Event)

		case "select_cards":
			if msg.State != nil {
				c.renderState(msg.State)
			}
			c.renderCardChoice(msg.Prompt, msg.Candidates, msg.Min, msg.Max)
			refs := c.readCardRefs(reader, msg.Candidates, msg.Min, msg.Max)
			if err := enc.Encode(ClientMessage{Type: "cards", Refs: refs}); err != nil {
				return fmt.Errorf("send cards: %w", err)
			}

		case "select_number":
			if msg.State != nil {
				c.renderState(msg.State)
			}
			fmt.Printf("\n%s (%d-%d): ", msg.Prompt, msg.Lo, msg.Hi)
			n := c.readNumber(reader, msg.Lo, msg.Hi)
			if err := enc.Encode(ClientMessage{Type: "number", Number: n}); err != nil {
				return fmt.Errorf("send number: %w", err)
			}

		case "confirm":
			if msg.State != nil {
				c.renderState(msg.State)
			}
			fmt.Printf("\n%s (y/n): ", msg.Prompt)
			answer := c.readYesNo(reader)
			if err := enc.Encode(ClientMessage{Type: "confirm", Answer: answer}); err != nil {
				return fmt.Errorf("send confirm: %w", err)
			}

		case "game_over":
			fmt.Println()
			fmt.Println("═══════════════════════════════════")
			fmt.Println("          GAME OVER")
			fmt.Println("═══════════════════════════════════")
			if msg.Winner < 0 {
				fmt.Println("No winner.")
			} else {
				fmt.Printf("Winner: P%d (%s)\n", msg.Winner+1, msg.Reason)
			}
			fmt.Println("═══════════════════════════════════")
			return nil
		}
	}
}

func (c *Client) renderEvent(ev *EventView) {
	if ev == nil {
		return
	}
	step := ev.Step
	for len(step) < 12 {
		step += " "
	}
	fmt.Printf("T%-2d %s| %s\n", ev.Turn, step, ev.Details)
}

func (c *Client) renderState(sv *StateView) {
	if sv == nil {
		return
	}

	fmt.Println()
	fmt.Println("╔══════════════════════════════════════════════════════╗")

	opp := sv.Opponent
	fmt.Printf("║  OPPONENT  Life: %d  HoloPower: %d  Hand: %d  Deck: %d\n",
		opp.Life, opp.HoloPower, opp.HandCount, opp.DeckCount)
	fmt.Printf("║  Lead: %s  Center: %s  Collab: %s  Back: %s\n",
		formatZone(opp.Lead), formatZone(opp.CenterStage), formatZone(opp.Collab), formatZone(opp.BackStage))

	fmt.Println("║──────────────────────────────────────────────────────")

	you := sv.You
	fmt.Printf("║  Lead: %s  Center: %s  Collab: %s  Back: %s\n",
		formatZone(you.Lead), formatZone(you.CenterStage), formatZone(you.Collab), formatZone(you.BackStage))
	fmt.Printf("║  YOU  Life: %d  HoloPower: %d  Hand: %d  Deck: %d\n",
		you.Life, you.HoloPower, you.HandCount, you.DeckCount)
	fmt.Println("╚══════════════════════════════════════════════════════╝")

	turnInfo := fmt.Sprintf("Turn %d | %s", sv.Turn, sv.Step)
	if sv.IsYourTurn {
		turnInfo += " | Your turn"
	} else {
		turnInfo += " | Opponent's turn"
	}
	fmt.Println(turnInfo)

	if len(you.Hand) > 0 {
		fmt.Printf("\nHand: ")
		for _, cv := range you.Hand {
			fmt.Printf("[%d] %s  ", cv.Ref, cv.Name)
		}
		fmt.Println()
	}
}

func formatZone(cards []CardView) string {
	if len(cards) == 0 {
		return "[ ]"
	}
	var names []string
	for _, cv := range cards {
		names = append(names, fmt.Sprintf("%s(#%d)", cv.Name, cv.Ref))
	}
	return strings.Join(names, ", ")
}

func (c *Client) renderCardChoice(prompt string, candidates []CardView, min, max int) {
	fmt.Printf("\n%s (select %d", prompt, min)
	if max != min {
		fmt.Printf("-%d", max)
	}
	fmt.Println(")")
	for _, cv := range candidates {
		fmt.Printf("  #%d) %s\n", cv.Ref, cv.Name)
	}
}

func (c *Client) readCardRefs(reader *bufio.Reader, candidates []CardView, min, max int) []uint32 {
	valid := make(map[uint32]bool, len(candidates))
	for _, cv := range candidates {
		valid[cv.Ref] = true
	}
	for {
		fmt.Print("> ")
		line, _ := reader.ReadString('\n')
		line = strings.TrimSpace(line)
		parts := strings.Fields(line)

		if len(parts) < min || len(parts) > max {
			fmt.Printf("Enter %d-%d card refs separated by spaces\n", min, max)
			continue
		}

		var refs []uint32
		ok := true
		for _, p := range parts {
			n, err := strconv.Atoi(p)
			if err != nil || !valid[uint32(n)] {
				fmt.Printf("%s is not a valid candidate ref\n", p)
				ok = false
				break
			}
			refs = append(refs, uint32(n))
		}
		if ok {
			return refs
		}
	}
}

func (c *Client) readNumber(reader *bufio.Reader, lo, hi int) int {
	for {
		line, _ := reader.ReadString('\n')
		line = strings.TrimSpace(line)
		n, err := strconv.Atoi(line)
		if err != nil || n < lo || n > hi {
			fmt.Printf("Enter a number between %d and %d: ", lo, hi)
			continue
		}
		return n
	}
}

func (c *Client) readYesNo(reader *bufio.Reader) bool {
	for {
		line, _ := reader.ReadString('\n')
		line = strings.TrimSpace(strings.ToLower(line))
		switch line {
		case "y", "yes":
			return true
		case "n", "no":
			return false
		default:
			fmt.Print("Enter y or n: ")
		}
	}
}
