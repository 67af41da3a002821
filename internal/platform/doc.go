// Package platform talks to the device: it runs Android shell tools (pm,
// dumpsys, am) either locally or through adb, and turns their output into
// app entries, details, launch results and icons.
package platform
