// Package msgs provides the telemetry protocol support and all
// message schemas.
package msgs

// Telemetry messages travel between a register-bank device and an
// operator (shell, dashboard, fleet controller) over any
// PacketReadWriter transport.
//
// The wire structs are maintained by hand with protobuf field tags;
// the schema is small and stable enough that generated code is not
// worth the build step.
//
// Producer: device
// Consumer: operator
