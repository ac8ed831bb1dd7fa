// Package rtf implements the MS-OXRTFCP RTF compression codec used for a
// message's RtfCompressed property (spec §4.7).
package rtf
