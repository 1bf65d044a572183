package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	RoomsCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "chatrelay_rooms_created_total",
		Help: "Number of rooms created.",
	})

	RoomIDCollisions = promauto.NewCounter(prometheus.CounterOpts{
		Name: "chatrelay_room_id_collisions_total",
		Help: "Number of room id candidates discarded because they already existed.",
	})

	MessagesAccepted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "chatrelay_messages_accepted_total",
		Help: "Number of messages that passed validation and were persisted.",
	})

	MessagesRejected = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "chatrelay_messages_rejected_total",
		Help: "Number of messages rejected by the pipeline, by reason.",
	}, []string{"reason"})

	MessagesBroadcast = promauto.NewCounter(prometheus.CounterOpts{
		Name: "chatrelay_messages_broadcast_total",
		Help: "Number of messages published to a broadcast destination.",
	})

	WSConnections = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "chatrelay_ws_connections",
		Help: "Currently connected websocket clients.",
	})
)

func Handler() http.Handler {
	return promhttp.Handler()
}
