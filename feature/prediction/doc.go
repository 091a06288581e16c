// Package prediction serves the traffic classification endpoint.
//
// An upload goes through these steps:
//
//  1. The CSV is parsed into a dataset.Table, which is never modified.
//  2. A numeric working copy is built with dataset.Clean: trimmed names,
//     rows holding missing or infinite values dropped, non-numeric columns dropped.
//  3. The model features are selected from the working copy and classified.
//  4. The surviving rows are taken from the original table by position and
//     the label (Benign or Bot) is appended as Predicted_Label.
//
// Routes:
//   - GET  /             liveness text
//   - POST /api/predict  multipart "file" in, classified_packets.csv out
//   - GET  /api/model    metadata of the loaded model
//
// Archiving to object storage and run history are optional side effects;
// their failures are logged and never change the response.
package prediction
