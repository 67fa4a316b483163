package chain

// marketplaceABI is the externally observed interface of the crop
// marketplace contract.
const marketplaceABI = `[
	{"type":"function","name":"listCrop","stateMutability":"nonpayable",
	 "inputs":[{"name":"name","type":"string"},{"name":"quantity","type":"uint256"},{"name":"price","type":"uint256"}],
	 "outputs":[]},
	{"type":"function","name":"buyCrop","stateMutability":"payable",
	 "inputs":[{"name":"cropId","type":"uint256"}],
	 "outputs":[]},
	{"type":"function","name":"getCrop","stateMutability":"view",
	 "inputs":[{"name":"cropId","type":"uint256"}],
	 "outputs":[{"name":"","type":"uint256"},{"name":"","type":"address"},{"name":"","type":"string"},
	            {"name":"","type":"uint256"},{"name":"","type":"uint256"},{"name":"","type":"bool"}]}
]`

// storageABI is the externally observed interface of the storage slot
// registry contract.
const storageABI = `[
	{"type":"event","name":"SlotDeactivated","anonymous":false,
	 "inputs":[{"indexed":false,"name":"id","type":"uint256"}]},
	{"type":"event","name":"SlotRegistered","anonymous":false,
	 "inputs":[{"indexed":false,"name":"id","type":"uint256"},{"indexed":false,"name":"owner","type":"address"},
	           {"indexed":false,"name":"capacity","type":"uint256"}]},
	{"type":"event","name":"SlotUpdated","anonymous":false,
	 "inputs":[{"indexed":false,"name":"id","type":"uint256"},{"indexed":false,"name":"available","type":"uint256"}]},
	{"type":"function","name":"deactivateSlot","stateMutability":"nonpayable",
	 "inputs":[{"name":"slotId","type":"uint256"}],
	 "outputs":[]},
	{"type":"function","name":"farmerSlots","stateMutability":"view",
	 "inputs":[{"name":"","type":"address"},{"name":"","type":"uint256"}],
	 "outputs":[{"name":"","type":"uint256"}]},
	{"type":"function","name":"getFarmerSlots","stateMutability":"view",
	 "inputs":[{"name":"farmer","type":"address"}],
	 "outputs":[{"name":"","type":"uint256[]"}]},
	{"type":"function","name":"nextSlotId","stateMutability":"view",
	 "inputs":[],
	 "outputs":[{"name":"","type":"uint256"}]},
	{"type":"function","name":"registerStorage","stateMutability":"nonpayable",
	 "inputs":[{"name":"capacity","type":"uint256"}],
	 "outputs":[]},
	{"type":"function","name":"storageSlots","stateMutability":"view",
	 "inputs":[{"name":"","type":"uint256"}],
	 "outputs":[{"name":"id","type":"uint256"},{"name":"owner","type":"address"},{"name":"capacity","type":"uint256"},
	            {"name":"available","type":"uint256"},{"name":"isActive","type":"bool"}]},
	{"type":"function","name":"updateAvailability","stateMutability":"nonpayable",
	 "inputs":[{"name":"slotId","type":"uint256"},{"name":"newAvailable","type":"uint256"}],
	 "outputs":[]}
]`
