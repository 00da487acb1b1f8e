package configuration

// ExampleConfig is written by `tt-riingd config init`
const ExampleConfig = `# tt-riingd configuration
version: 1

# seconds between two control loop ticks
tick_seconds: 2

# periodically push the static fan colors below to the controllers
enable_broadcast: false
broadcast_interval: 2

controllers:
  - kind: "riing-quad"
    id: "controller1"
    usb:
      vid: 0x264a
      pid: 0x2330
    fans:
      - idx: 1
        name: "CPU Fan"
        active_curve: "cpu_curve"
        curve: ["cpu_curve", "silent"]
      - idx: 2
        name: "Rear Fan"
        # without a curve list the built-in curves Constant, StepCurve and BezierCurve are assigned
        active_curve: "StepCurve"

curves:
  - kind: "step-curve"
    id: "cpu_curve"
    tmps: [30.0, 40.0, 50.0, 60.0, 70.0, 80.0]
    spds: [25, 30, 40, 55, 75, 100]
  - kind: "constant"
    id: "silent"
    speed: 30

sensors:
  - kind: "lm-sensors"
    id: "cpu_sensor"
    chip: "k10temp-pci-00c3"
    feature: "Tctl"

mappings:
  - sensor: "cpu_sensor"
    targets:
      # controller is the 1-based position in the controllers list
      - controller: 1
        fan_idx: 1
      - controller: 1
        fan_idx: 2

colors:
  - color: "blue"
    rgb: [0, 0, 255]

color_mappings:
  - color: "blue"
    targets:
      - controller: 1
        fan_idx: 1
      - controller: 1
        fan_idx: 2

statistics:
  enabled: false
  port: 9000

api:
  enabled: false
  host: "localhost"
  port: 8080

dbus:
  # "session" or "system"
  bus: "session"
`
