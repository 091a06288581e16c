// Package model loads and runs the pre-trained traffic classifier.
//
// The classifier is a tree ensemble (random forest or a single decision tree)
// exported to JSON with the node layout used by scikit-learn: every node has
// left/right child indices, a feature index and a threshold, and leaves carry
// the per-class sample distribution in value. A leaf is a node whose left
// child is -1.
//
// # Artifact
//
//	{
//	  "name": "random_forest_traffic_classifier",
//	  "version": "2024-03-01",
//	  "features": ["Flow Duration", "Total Fwd Packets"],
//	  "classes": [0, 1],
//	  "trees": [{"nodes": [
//	    {"feature": 0, "threshold": 1000, "left": 1, "right": 2},
//	    {"left": -1, "right": -1, "value": [3, 97]},
//	    {"left": -1, "right": -1, "value": [88, 12]}
//	  ]}]
//	}
//
// # Loading
//
// Load reads the artifact from the local filesystem or from object storage,
// depending on Config.Source. The returned Forest is immutable and safe for
// concurrent use by any number of requests.
//
// # Labels
//
// Predict returns label codes. Label maps a code to the human-readable name
// (0 is "Benign", 1 is "Bot"); unknown codes map to an empty string.
package model
