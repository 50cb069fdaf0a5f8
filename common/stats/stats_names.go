package stats

/*
All metrics recorded by the launcher and the controller client. Per compute
host instruments are recorded under the scope "compute/<computeID>".
*/
const (
	/****************************** Run metrics *****************************/
	/*
		time from the first controller query to the last start command of a run
	*/
	LauncherRunLatency_ms = "runLatency_ms"

	/*
		number of compute hosts with at least one node to start
	*/
	LauncherHostsGauge = "hostsGauge"

	/*
		number of nodes queued for start across all hosts
	*/
	LauncherQueuedNodesGauge = "queuedNodesGauge"

	/*
		number of selected nodes skipped because they were already started
	*/
	LauncherSkippedStartedCounter = "skippedStartedCounter"

	/*
		number of runs stopped by the operator
	*/
	LauncherInterruptedCounter = "interruptedCounter"

	/*
		number of coordinator waits, and the total time spent in them
	*/
	LauncherWaitCounter = "waitCounter"
	LauncherWaitLatency_ms = "waitLatency_ms"

	/************************** Admission metrics ***************************/
	/*
		number of cpu load probes sent to the controller
	*/
	LauncherLoadProbeCounter = "loadProbeCounter"

	/*
		number of cpu load probes that failed
	*/
	LauncherLoadProbeErrCounter = "loadProbeErrCounter"

	/*
		number of admission checks that found the host busy
	*/
	LauncherAdmissionDeferredCounter = "admissionDeferredCounter"

	/*
		the last cpu utilization observed on a compute host
	*/
	LauncherComputeCPUGauge = "cpuUsagePercentGauge"

	/**************************** Start metrics *****************************/
	/*
		number of start commands issued
	*/
	LauncherStartCounter = "startCounter"

	/*
		number of start commands the controller accepted
	*/
	LauncherStartOkCounter = "startOkCounter"

	/*
		number of start commands that failed
	*/
	LauncherStartErrCounter = "startErrCounter"

	/*
		time taken by the controller to answer a start command
	*/
	LauncherStartLatency_ms = "startLatency_ms"

	/**************************** Controller client *************************/
	/*
		number of http requests sent to the controller (before pester retries)
	*/
	ControllerRequestCounter = "requestCounter"

	/*
		number of http requests that failed or returned a non 2xx status
	*/
	ControllerRequestErrCounter = "requestErrCounter"

	/*
		number of pester retries logged
	*/
	ControllerRetryCounter = "retryCounter"

	/*
		round trip time of controller requests, including retries
	*/
	ControllerRequestLatency_ms = "requestLatency_ms"
)
