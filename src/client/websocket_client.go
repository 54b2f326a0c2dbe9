package client

import (
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/gorilla/websocket"
	"gitlab.com/open-soft/go-spot-bot/src/model"
)

const StreamStateConnected = "connected"
const StreamStateDisconnected = "disconnected"
const StreamStateError = "error"

const streamReconnectDelay = time.Second * 5

type StreamStatus struct {
	State string
	Error string
}

// TickerStreamURL builds the combined-stream subscribe URL for a set of
// symbols, lowercased: <root>/stream?streams=btcusdt@ticker/ethusdt@ticker
func TickerStreamURL(wsRoot string, symbols []string) string {
	streams := make([]string, 0, len(symbols))

	for _, symbol := range symbols {
		streams = append(streams, fmt.Sprintf("%s@ticker", strings.ToLower(symbol)))
	}

	return fmt.Sprintf("%s/stream?streams=%s", wsRoot, strings.Join(streams, "/"))
}

// ListenTickerStream connects to the combined ticker stream and pushes
// decoded ticker frames into tickerChannel. The connection is re-dialed
// after a 5 second delay on close or error; status transitions are
// reported on statusChannel without ever blocking the reader.
func ListenTickerStream(address string, tickerChannel chan<- model.WSTickerEvent, statusChannel chan<- StreamStatus) {
	connection, _, err := websocket.DefaultDialer.Dial(address, nil)
	if err != nil {
		log.Printf("Binance WS [%s]: %s, wait and reconnect...", address, err.Error())
		notifyStatus(statusChannel, StreamStatus{State: StreamStateError, Error: err.Error()})
		time.Sleep(streamReconnectDelay)
		ListenTickerStream(address, tickerChannel, statusChannel)
		return
	}

	notifyStatus(statusChannel, StreamStatus{State: StreamStateConnected})

	// server pings carry a payload that has to be echoed back
	connection.SetPingHandler(func(appData string) error {
		return connection.WriteControl(websocket.PongMessage, []byte(appData), time.Now().Add(time.Second*10))
	})

	go func() {
		for {
			_, message, err := connection.ReadMessage()
			if err != nil {
				log.Printf("Binance WS read: %s", err.Error())

				_ = connection.Close()
				notifyStatus(statusChannel, StreamStatus{State: StreamStateDisconnected})
				log.Printf("Binance WS, wait and reconnect...")
				time.Sleep(streamReconnectDelay)
				ListenTickerStream(address, tickerChannel, statusChannel)
				return
			}

			var envelope model.StreamEnvelope
			if err = json.Unmarshal(message, &envelope); err != nil {
				log.Printf("Binance WS: invalid stream envelope: %s", err.Error())
				continue
			}

			if !strings.HasSuffix(envelope.Stream, "@ticker") {
				continue
			}

			var ticker model.WSTickerEvent
			if err = json.Unmarshal(envelope.Data, &ticker); err != nil {
				log.Printf("Binance WS: invalid ticker frame: %s", err.Error())
				continue
			}

			tickerChannel <- ticker
		}
	}()
}

func notifyStatus(statusChannel chan<- StreamStatus, status StreamStatus) {
	select {
	case statusChannel <- status:
	default:
	}
}
