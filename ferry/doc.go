// Package ferry moves single files between two peers over a byte stream.
//
// The wire protocol lives in package transfer and runs over anything that is
// an io.Reader and io.Writer. This package adds Peer, which pairs the QUIC
// transport with a transfer engine so one side can listen and the other dial.
package ferry
