// Package infra holds the adapters behind the core interfaces: the MQTT
// setpoint client, the Prometheus and InfluxDB metrics sinks, Sentry
// monitoring and the zerolog logger.
package infra
