// Package planner decides where downloaded media lands on disk.
//
// Each post gets a prefix "{creatorId}/{date}", so the creator becomes a
// directory and the publish date the file stem. Posts sharing a date get a
// numeric suffix. Each media URL of a post then becomes
// "{prefix}_{index}.{ext}" under the output directory.
package planner
