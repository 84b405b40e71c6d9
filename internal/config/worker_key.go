package config

type WorkerKeyStruct struct {
	AnalyticsEventsQueue string
}

var WorkerKey = &WorkerKeyStruct{
	AnalyticsEventsQueue: "analytics_events_queue",
}
