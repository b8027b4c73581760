// Package domain turns raw traffic-accident records into model-ready feature rows.
//
// # Data Source
//
// Records follow the column layout of the public US accident event exports
// (one row per accident, comma separated, UTF-8). Column names carry their unit
// in parentheses, e.g. "Temperature(F)" or "Visibility(mi)". Empty cells mean the
// reading was not reported.
//
// # Stage Order
//
//	Deduplicate         exact duplicates ignoring ID, first occurrence kept
//	NormalizeTemporal   parse Start_Time, derive calendar/clock fields, window filter
//	FilterPlausible     inclusive per-field bounds, missing readings pass
//	Impute              missing precipitation becomes 0.0
//	FilterCity          optional composite-key restriction
//	bucketing           precipitation and visibility bins
//	weather grouping    keyword or regex taxonomy
//	road speed class    priority cascade over the street name
//	severity collapse   {1,2} -> Low, {3,4} -> High
//	Project             fixed column superset, rows with missing cells dropped
//
// Bucketing through severity collapse run per record inside
// [Featurizer.Featurize].
//
// # Road Speed Cascade
//
// Street names are free text ("I-95 N", "Massachusetts Turnpike", "W 11th St").
// Rules are evaluated top to bottom and the first match wins:
//
//	interstate           (?i)\bI[-\s]?\d+        -> High_Speed
//	highspeed_keyword    " freeway", " fwy"      -> High_Speed
//	structure            " bridge", " tunnel"    -> High_Speed with " fwy"/" tpke", else Medium_Speed
//	us_state_route       US 1, State Route 9     -> Medium_Speed
//	state_code_route     CA-1, FM 1960           -> Medium_Speed unless "W 11th"-style directional
//	mediumspeed_keyword  " parkway", " highway"  -> Medium_Speed
//	lowspeed_keyword     " street", " st"        -> Low_Speed
//	none                                         -> Other/Unknown
//
// Keywords are matched against " " + lower(text) so a keyword only hits at the
// start of a word.
//
// # Bucket Edges
//
// Bins are left-closed: a value exactly on an edge belongs to the bin starting at
// that edge, and values past the last edge fall in the last bin.
//
//	Precipitation(in): [0, 0.0001) No Rain | [0.0001, 0.1) Low | [0.1, 0.3) Moderate | >=0.3 Heavy
//	Visibility(mi):    [0, 1) Very Low | [1, 3) Low | [3, 6) Moderate | >=6 Clear
//
// A missing visibility becomes "Unknown"; a present value below the first edge
// gets no label and the row is dropped at projection.
package domain
