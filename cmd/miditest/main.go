package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"time"

	"go-irrational/host"
	"go-irrational/irrational"
	"go-irrational/midi"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		return
	}

	port := ""
	if len(os.Args) > 2 {
		port = os.Args[2]
	}

	switch os.Args[1] {
	case "list":
		listPorts()
	case "notes":
		testNotes(port)
	case "clock":
		testClock(port)
	case "poll":
		pollPorts(port)
	default:
		usage()
	}
}

func usage() {
	fmt.Println("MIDI Test Scripts")
	fmt.Println("")
	fmt.Println("Commands:")
	fmt.Println("  list          - List all MIDI ports")
	fmt.Println("  notes [port]  - Play the first digits of pi")
	fmt.Println("  clock [port]  - Print incoming MIDI clock (16ths)")
	fmt.Println("  poll [port]   - Watch an output port come and go")
}

func listPorts() {
	fmt.Println("(waiting up to 3 seconds...)")

	ins, err := midi.InPorts()
	if err != nil {
		fmt.Println("\nTIMEOUT! CoreMIDI is hung.")
		fmt.Println("Fix: sudo killall coreaudiod midiserver")
		return
	}
	fmt.Println("=== MIDI Input Ports ===")
	for i, name := range ins {
		fmt.Printf("  %d: %s\n", i, name)
	}

	outs, _ := midi.OutPorts()
	fmt.Println("\n=== MIDI Output Ports ===")
	for i, name := range outs {
		fmt.Printf("  %d: %s\n", i, name)
	}
}

func testNotes(port string) {
	out, err := midi.OpenSender(port)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}
	fmt.Printf("Playing pi on %s...\n", out.Name())

	conv, _ := host.NewConverter(60, "Major")
	w := irrational.NewWalker(irrational.DefaultBank())
	w.Init(0, 16)

	for i := 0; i < 16; i++ {
		code := w.Advance()
		note := conv.Note(code)
		fmt.Printf("  %d -> %d\n", host.Digit(code), note)
		out.Send(midi.Event{Type: midi.NoteOn, Note: note, Velocity: 100})
		time.Sleep(150 * time.Millisecond)
		out.Send(midi.Event{Type: midi.NoteOff, Note: note})
	}

	fmt.Println("Done!")
}

func testClock(port string) {
	fmt.Println("Listening for clock... Ctrl+C to exit.")

	var n int
	stop, err := midi.ListenClock(port, 4, func() {
		n++
		fmt.Printf("\r  tick %d", n)
	}, func() {
		n = 0
		fmt.Println("\n  start")
	})
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}
	defer stop()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt)
	<-sig
	fmt.Println()
}

func pollPorts(port string) {
	fmt.Println("Polling for port changes every second...")
	fmt.Println("Connect/disconnect a device to test. Ctrl+C to exit.")

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	pw := midi.NewPortWatcher(port)
	go pw.Run(ctx)

	for event := range pw.Events() {
		state := "connected"
		if event.Type == midi.PortDisconnected {
			state = "disconnected"
		}
		fmt.Printf("[%s] %s %s\n", time.Now().Format("15:04:05"), event.Name, state)
	}
}
