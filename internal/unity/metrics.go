package unity

// metricNames maps a metric path to the display name emitted in the "name"
// parameter of historic-metric rows.
var metricNames = map[string]string{
	"sp.*.blockCache.global.summary.dirtyBytes":       "Block Cache Dirty Data",
	"sp.*.blockCache.global.summary.readHitsRate":     "Block Cache Read Hits",
	"sp.*.blockCache.global.summary.readMissesRate":   "Block Cache Read Misses",
	"sp.*.blockCache.global.summary.writeHitsRate":    "Block Cache Write Hits",
	"sp.*.blockCache.global.summary.writeMissesRate":  "Block Cache Write Misses",
	"sp.*.cpu.summary.utilization":                    "summary CPU Util",
	"sp.*.iscsi.fePort.*.readBytesRate":               "Read",
	"sp.*.iscsi.fePort.*.readsRate":                   "Read",
	"sp.*.iscsi.fePort.*.writeBytesRate":              "Written",
	"sp.*.iscsi.fePort.*.writesRate":                  "Write",
	"sp.*.net.basic.inBytesRate":                      "Network In",
	"sp.*.net.basic.outBytesRate":                     "Network Out",
	"sp.*.net.device.*.bytesInRate":                   "Network In",
	"sp.*.net.device.*.bytesOutRate":                  "Network Out",
	"sp.*.net.device.*.pktsInRate":                    "Network In",
	"sp.*.net.device.*.pktsOutRate":                   "Network Out",
	"sp.*.nfs.basic.readAvgSize":                      "NFS Avg Read Size",
	"sp.*.nfs.basic.readBytesRate":                    "NFS Read",
	"sp.*.nfs.basic.readIoTimeRate":                   "NFS Read IO",
	"sp.*.nfs.basic.readResponseTime":                 "NFS Avg Read",
	"sp.*.nfs.basic.readsRate":                        "NFS Read",
	"sp.*.nfs.basic.responseTime":                     "NFS Avg IO",
	"sp.*.nfs.basic.totalIoCallsRate":                 "NFS Total I/O",
	"sp.*.nfs.basic.totalIoTimeRate":                  "NFS Total I/O",
	"sp.*.nfs.basic.writeAvgSize":                     "NFS Avg Write Size",
	"sp.*.nfs.basic.writeBytesRate":                   "NFS Write",
	"sp.*.nfs.basic.writeIoTimeRate":                  "NFS Write IO",
	"sp.*.nfs.basic.writeResponseTime":                "NFS Avg Write",
	"sp.*.nfs.basic.writesRate":                       "NFS Write",
	"sp.*.nfs.totalCallsRate":                         "Total NFS",
	"sp.*.physical.disk.*.averageQueueLength":         "Avg Queue Length",
	"sp.*.physical.disk.*.readBytesRate":              "Read",
	"sp.*.physical.disk.*.readsRate":                  "Reads",
	"sp.*.physical.disk.*.responseTime":               "Average Response Time",
	"sp.*.physical.disk.*.serviceTime":                "Average Service Time",
	"sp.*.physical.disk.*.totalCallsRate":             "Total Calls",
	"sp.*.physical.disk.*.writeBytesRate":             "Written",
	"sp.*.physical.disk.*.writesRate":                 "Writes",
	"sp.*.storage.filesystem.*.clientReadBytesRate":   "Client Read",
	"sp.*.storage.filesystem.*.clientReadSizeAvg":     "Avg Client Read Size",
	"sp.*.storage.filesystem.*.clientReadTimeAvg":     "Avg Client Read Time",
	"sp.*.storage.filesystem.*.clientReadsRate":       "Client Read",
	"sp.*.storage.filesystem.*.clientWriteBytesRate":  "Client Write",
	"sp.*.storage.filesystem.*.clientWriteSizeAvg":    "Avg Client Write Size",
	"sp.*.storage.filesystem.*.clientWriteTimeAvg":    "Avg Client Write Time",
	"sp.*.storage.filesystem.*.clientWritesRate":      "Client Write",
	"sp.*.storage.filesystem.*.readBytesRate":         "Internal Read",
	"sp.*.storage.filesystem.*.readSizeAvg":           "Avg Internal Read Size",
	"sp.*.storage.filesystem.*.readsRate":             "Internal Read",
	"sp.*.storage.filesystem.*.writeBytesRate":        "Internal Write",
	"sp.*.storage.filesystem.*.writeSizeAvg":          "Avg Internal Write Size",
	"sp.*.storage.filesystem.*.writesRate":            "Internal Write",
	"sp.*.storage.lun.*.avgReadSize":                  "Average Read",
	"sp.*.storage.lun.*.avgWriteSize":                 "Average Write",
	"sp.*.storage.lun.*.queueLength":                  "Average Queue Length",
	"sp.*.storage.lun.*.readBytesRate":                "Read",
	"sp.*.storage.lun.*.readsRate":                    "Read",
	"sp.*.storage.lun.*.responseTime":                 "Response Time",
	"sp.*.storage.lun.*.totalCallsRate":               "Total Call",
	"sp.*.storage.lun.*.writeBytesRate":               "Written",
	"sp.*.storage.lun.*.writesRate":                   "Write",
}
