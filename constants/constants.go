package constants

const (
	// config
	DEFAULT_CONFIG_DIR   = ".mcbench"
	DEFAULT_CONFIG_FILE  = "config.json"
	DEFAULT_RUN_LOG_FILE = "run.log"

	DEFAULT_REQUESTS    int = 10000
	DEFAULT_CONCURRENCY int = 50
	DEFAULT_VALUE_SIZE  int = 1024

	DEFAULT_LOCAL_HOSTNAME  = "localhost"
	DEFAULT_METADATA_SERVER = "127.0.0.1:2379"
	DEFAULT_MASTER_SERVER   = "127.0.0.1:50051"

	DEFAULT_GLOBAL_SEGMENT_SIZE int64 = 3200 * 1024 * 1024
	DEFAULT_LOCAL_BUFFER_SIZE   int64 = 512 * 1024 * 1024

	DEFAULT_SEED int64 = 0x6D63626E6368

	// environment variables consulted when neither a flag nor a config file
	// value is given
	ENV_LOCAL_HOSTNAME  = "LOCAL_HOSTNAME"
	ENV_METADATA_SERVER = "MC_METADATA_SERVER"
	ENV_METADATA_ADDR   = "METADATA_ADDR"
	ENV_MASTER_SERVER   = "MASTER_SERVER"
	ENV_PROTOCOL        = "PROTOCOL"
	ENV_DEVICE_NAME     = "DEVICE_NAME"

	// benchmark operations
	OP_PUT   = "put"
	OP_GET   = "get"
	OP_MIXED = "mixed"

	// transfer protocols accepted by the store
	PROTOCOL_TCP  = "tcp"
	PROTOCOL_RDMA = "rdma"

	// metadata-plane prefix under which benchmark segments register themselves
	SEGMENT_PREFIX = "/mooncake/segments/"
)
