// Package main implements ledmoji-send, a one-shot helper that publishes a
// single render request to the input topic and waits for the broker ack.
// Useful for exercising a running daemon without a producer.
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/tidwall/sjson"
)

func main() {
	os.Exit(run())
}

func run() int {
	broker := flag.String("broker", "tcp://localhost:1883", "Broker URL")
	clientID := flag.String("client-id", "ledmoji-send", "MQTT client ID")
	topic := flag.String("topic", "ledmoji/render", "Input topic")
	text := flag.String("text", "", "Text to render (required)")
	color := flag.String("color", "", "Tint color, e.g. #ff8800")
	scroll := flag.Bool("scroll", false, "Request scrolling output")
	timeout := flag.Duration("timeout", 10*time.Second, "Connect/publish timeout")
	flag.Parse()

	if *text == "" {
		fmt.Fprintln(os.Stderr, "Error: -text is required")
		flag.Usage()
		return 1
	}

	payload, err := buildPayload(*text, *color, *scroll)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	opts := mqtt.NewClientOptions().
		AddBroker(*broker).
		SetClientID(*clientID).
		SetConnectTimeout(*timeout)
	client := mqtt.NewClient(opts)

	if token := client.Connect(); !token.WaitTimeout(*timeout) || token.Error() != nil {
		fmt.Fprintf(os.Stderr, "Error: connecting to %s: %v\n", *broker, token.Error())
		return 1
	}
	defer client.Disconnect(250)

	// QoS 1 so the broker ack confirms delivery before we exit. Requests
	// are events, not state, so no retained flag here.
	token := client.Publish(*topic, 1, false, payload)
	if !token.WaitTimeout(*timeout) || token.Error() != nil {
		fmt.Fprintf(os.Stderr, "Error: publishing to %s: %v\n", *topic, token.Error())
		return 1
	}

	fmt.Printf("Published %q to %s\n", *text, *topic)
	return 0
}

// buildPayload assembles the JSON render request.
func buildPayload(text, color string, scroll bool) (string, error) {
	payload, err := sjson.Set("{}", "text", text)
	if err != nil {
		return "", err
	}
	if color != "" {
		if payload, err = sjson.Set(payload, "color", color); err != nil {
			return "", err
		}
	}
	if scroll {
		if payload, err = sjson.Set(payload, "scroll", true); err != nil {
			return "", err
		}
	}
	return payload, nil
}
