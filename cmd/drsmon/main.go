package main

import (
	"flag"
	"log"
	"os"
	"reflect"
	"strings"

	"github.com/robotalks/drs.go/pkg/l1/comm/mqtt"
	"github.com/robotalks/drs.go/pkg/l1/msgs"

	_ "github.com/robotalks/drs.go/pkg/supervisor/msgs"
)

var (
	mqttURL = "mqtt://localhost:1883/drs/"
	filter  = "#"
)

func init() {
	if val := os.Getenv("DRS_MQTT_URL"); val != "" {
		mqttURL = val
	}
	flag.StringVar(&mqttURL, "mqtt", mqttURL, "MQTT broker URL.")
	flag.StringVar(&filter, "topic", filter, "Topic filter relative to the URL prefix, e.g. +/+/msg")
}

func msgName(msg interface{}) string {
	return reflect.Indirect(reflect.ValueOf(msg)).Type().Name()
}

func main() {
	flag.Parse()
	log.SetFlags(log.Lmicroseconds)

	q, err := mqtt.NewQueueFromURL(mqttURL)
	if err != nil {
		log.Fatalln(err)
	}
	q.Sub(filter, mqtt.Handler(func(topic string, payload []byte) {
		if strings.HasSuffix(topic, "/"+mqtt.TopicMeta) {
			log.Printf("%s: %s", topic, string(payload))
			return
		}
		typed, err := msgs.DecodeTyped(payload)
		if err != nil {
			log.Printf("%s: bad message: %v", topic, err)
			return
		}
		msg, err := typed.Decode()
		if err != nil {
			log.Printf("%s: decode error: (type_id=%x) %v", topic, typed.TypeId, err)
			return
		}
		kind := "EVT"
		switch {
		case typed.IsReply():
			kind = "RPL"
		case typed.IsCommand():
			kind = "CMD"
		}
		log.Printf("%s: %s#%d [%s] %s", topic, kind, typed.Sequence, msgName(msg),
			msg.(msgs.SerializableMessage).Serializable().String())
	}))
	// subscriptions are (re)issued once connected.
	if token := q.Connect(); token.Wait() && token.Error() != nil {
		log.Fatalln(token.Error())
	}
	<-(chan struct{})(nil)
}
