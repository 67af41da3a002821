package model

// Package model defines domain data structures shared by the screens: installed
// app entries and details, screen status, launch outcomes and the closed set of
// classified errors. Values are plain and immutable once handed to a store.
