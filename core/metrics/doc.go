// Package metrics defines the sinks that observe a schedule run: how many
// sessions were loaded and from where, and how large each day's grid came
// out. Sinks are built from configuration through the factory registry;
// several configured sinks are combined into a MultiSink automatically.
package metrics
