package document

// Recognized field keys per node kind. Fields are free-form strings on the
// wire, but the key set is closed: unrecognized keys are dropped during
// sanitization rather than propagated as untyped blobs.
var recognizedFields = map[string]map[string]bool{
	KindRoot: {
		"description": true,
	},
	KindElement: {
		"description": true,
		"objective":   true,
		"content_url": true,
		"notes":       true,
	},
}

// RecognizedField reports whether key is part of the closed field key set
// for the given node kind.
func RecognizedField(kind, key string) bool {
	return recognizedFields[kind][key]
}

// filterFields returns a copy of fields containing only recognized keys for
// the given kind. Returns nil for nil or fully-unrecognized input so empty
// maps don't accumulate in serialized documents.
func filterFields(kind string, fields map[string]string) map[string]string {
	if len(fields) == 0 {
		return nil
	}
	var out map[string]string
	for k, v := range fields {
		if !RecognizedField(kind, k) {
			continue
		}
		if out == nil {
			out = make(map[string]string, len(fields))
		}
		out[k] = v
	}
	return out
}
